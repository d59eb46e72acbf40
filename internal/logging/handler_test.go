package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(h)

	now := time.Now()
	logger.Info("copied file", "kit", "alpha")

	output := buf.String()
	if !strings.Contains(output, "INFO") {
		t.Errorf("expected level INFO in output, got: %q", output)
	}
	if !strings.Contains(output, "copied file") {
		t.Errorf("expected message in output, got: %q", output)
	}
	if !strings.Contains(output, "kit=alpha") {
		t.Errorf("expected attribute in output, got: %q", output)
	}
	if !strings.Contains(output, now.Format(time.Kitchen)) {
		t.Errorf("expected kitchen time in output, got: %q", output)
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).With("kit", "alpha").WithGroup("file")

	logger.Info("deployed", "path", "run.md")

	output := buf.String()
	if !strings.Contains(output, "kit=alpha") {
		t.Errorf("expected common attribute in output, got: %q", output)
	}
	if !strings.Contains(output, "file.path=run.md") {
		t.Errorf("expected grouped attribute in output, got: %q", output)
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	ctx := t.Context()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected Info level to be disabled when min level is Warn")
	}
	if !h.Enabled(ctx, slog.LevelWarn) {
		t.Error("expected Warn level to be enabled")
	}
}

func TestHandler_TraceLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))

	logger.Log(t.Context(), LevelTrace, "walking")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE label, got: %q", buf.String())
	}
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "no time", 0)
	if err := h.Handle(t.Context(), r); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "INFO") {
		t.Errorf("expected output to start with level, got: %q", buf.String())
	}
}

func TestMultiHandler_FansOut(t *testing.T) {
	var text, jsonBuf bytes.Buffer
	logger := slog.New(NewMultiHandler(
		NewHandler(&text, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&jsonBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	))

	logger.Debug("only json")
	logger.Info("both", "kit", "alpha")

	if strings.Contains(text.String(), "only json") {
		t.Errorf("text handler should not receive debug records: %q", text.String())
	}
	if !strings.Contains(text.String(), "both") {
		t.Errorf("text handler missing info record: %q", text.String())
	}
	if !strings.Contains(jsonBuf.String(), "only json") || !strings.Contains(jsonBuf.String(), `"kit":"alpha"`) {
		t.Errorf("json handler missing records: %q", jsonBuf.String())
	}
}
