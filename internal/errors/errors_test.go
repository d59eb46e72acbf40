package errors

import (
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrKitNotFound, ExitUser),
			want: "kit not found",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("loading kit: %w", ErrKitNotInstalled), ExitUser),
			want: "loading kit: kit not installed",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	tests := []struct {
		name       string
		err        *ExitError
		wantTarget error
		wantIs     bool
	}{
		{
			name:       "unwrap to sentinel error",
			err:        NewExitError(ErrKitNotFound, ExitUser),
			wantTarget: ErrKitNotFound,
			wantIs:     true,
		},
		{
			name:       "unwrap through cockroach wrap",
			err:        NewExitError(Wrapf(ErrKitNotInstalled, "kit %q", "alpha"), ExitUser),
			wantTarget: ErrKitNotInstalled,
			wantIs:     true,
		},
		{
			name:       "no match for different sentinel",
			err:        NewExitError(ErrKitNotFound, ExitUser),
			wantTarget: ErrKitNotInstalled,
			wantIs:     false,
		},
		{
			name:       "nil underlying error",
			err:        NewExitError(nil, ExitUser),
			wantTarget: ErrKitNotFound,
			wantIs:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.wantTarget); got != tt.wantIs {
				t.Errorf("Is() = %v, want %v", got, tt.wantIs)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"kit not found", Wrap(ErrKitNotFound, "alpha"), ExitUser},
		{"kit not installed", Wrap(ErrKitNotInstalled, "alpha"), ExitUser},
		{"io failure", New("disk full"), ExitSystem},
		{"existing exit error", NewExitError(New("bad flag"), ExitUser), ExitUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got == nil {
				t.Fatal("Classify() = nil")
			}
			if got.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", got.Code, tt.wantCode)
			}
		})
	}

	if Classify(nil) != nil {
		t.Error("Classify(nil) should be nil")
	}
}

func TestErrorWrappingChain(t *testing.T) {
	wrappedOnce := Wrap(ErrKitNotFound, "resolving kit")
	wrappedTwice := Wrapf(wrappedOnce, "installing %q", "alpha")
	exitErr := NewExitError(wrappedTwice, ExitUser)

	if !Is(exitErr, ErrKitNotFound) {
		t.Error("Is() should find ErrKitNotFound through wrapping chain")
	}

	var target *ExitError
	if !As(exitErr, &target) {
		t.Error("As() should find ExitError")
	}
	if target.Code != ExitUser {
		t.Errorf("ExitError.Code = %d, want %d", target.Code, ExitUser)
	}

	want := `installing "alpha": resolving kit: kit not found`
	if got := exitErr.Error(); got != want {
		t.Errorf("ExitError.Error() = %q, want %q", got, want)
	}
}

func TestNewConstructors(t *testing.T) {
	t.Run("NewUserError", func(t *testing.T) {
		e := NewUserError(New("user error"), "check input")
		if e.Code != ExitUser {
			t.Errorf("Code = %d, want %d", e.Code, ExitUser)
		}
		if e.Suggestion != "check input" {
			t.Errorf("Suggestion = %q, want 'check input'", e.Suggestion)
		}
	})

	t.Run("NewSystemError", func(t *testing.T) {
		e := NewSystemError(New("system error"), "check logs")
		if e.Code != ExitSystem {
			t.Errorf("Code = %d, want %d", e.Code, ExitSystem)
		}
	})

	t.Run("NewConfigError", func(t *testing.T) {
		e := NewConfigError(New("config error"))
		if e.Code != ExitUser {
			t.Errorf("Code = %d, want %d", e.Code, ExitUser)
		}
		if e.Suggestion == "" {
			t.Error("Suggestion should not be empty")
		}
	})
}
