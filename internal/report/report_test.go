package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporter_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithColor(&buf, false)

	r.Header("Installing kit: %s", "alpha")
	r.Step("+ %s", "run.md")
	r.Dry("%s -> %s", "run.md", ".claude/commands/run.md")
	r.Warn("Skipping user-modified: %s", "notes.md")
	r.Success("Installed %s", "alpha")
	r.Fail("Failed %s", "beta")

	want := "Installing kit: alpha\n" +
		"  + run.md\n" +
		"  [DRY] run.md -> .claude/commands/run.md\n" +
		"  Skipping user-modified: notes.md\n" +
		"✓ Installed alpha\n" +
		"✗ Failed beta\n"
	assert.Equal(t, want, buf.String())
}

func TestReporter_ColorOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewWithColor(&buf, true)

	r.Success("done")

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "✓ done")
}

func TestNew_BufferIsNotColored(t *testing.T) {
	t.Setenv("CLICOLOR_FORCE", "")
	var buf bytes.Buffer
	New(&buf).Header("kit")
	assert.Equal(t, "kit\n", buf.String())
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard().Step("anything %d", 1)
	})
}
