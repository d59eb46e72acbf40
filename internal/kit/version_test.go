package kit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.1.0", -1},
		{"v2.0.0", "2.0.0", 0},
		{"1.10.0", "1.9.0", 1},
		{"1.0.0-beta", "1.0.0", -1},
	}
	for _, tt := range tests {
		got, err := CompareVersions(tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "CompareVersions(%q, %q)", tt.a, tt.b)
	}

	_, err := CompareVersions("latest", "1.0.0")
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		installed, next string
		want            Change
	}{
		{"", "1.0.0", ChangeInstall},
		{"1.0.0", "1.2.0", ChangeUpgrade},
		{"2.0.0", "1.2.0", ChangeDowngrade},
		{"1.0.0", "1.0.0", ChangeReinstall},
		{"nightly", "1.0.0", ChangeReinstall},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.installed, tt.next), "Classify(%q, %q)", tt.installed, tt.next)
	}
}
