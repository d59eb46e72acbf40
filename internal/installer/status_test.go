package installer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/vibery/internal/errors"
)

func TestStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.inst.Install(ctx, "beta", false)
	require.NoError(t, err)

	st, err := f.inst.Status("beta")
	require.NoError(t, err)
	assert.False(t, st.Drifted())
	require.Len(t, st.Files, 2)

	agent := filepath.Join(f.project, ".claude", "agents", "reviewer.md")
	require.NoError(t, os.WriteFile(agent, []byte("# Reviewer, edited\n"), 0o644))
	require.NoError(t, os.Remove(filepath.Join(f.project, ".claude", "skills", "review", "SKILL.md")))

	st, err = f.inst.Status("beta")
	require.NoError(t, err)
	assert.True(t, st.Drifted())

	states := map[string]FileState{}
	for _, fs := range st.Files {
		states[fs.Path] = fs.State
	}
	assert.Equal(t, map[string]FileState{
		filepath.Join(".claude", "agents", "reviewer.md"):       StateModified,
		filepath.Join(".claude", "skills", "review", "SKILL.md"): StateMissing,
	}, states)
}

func TestStatus_NotInstalled(t *testing.T) {
	f := newFixture(t)
	_, err := f.inst.Status("alpha")
	assert.True(t, errors.Is(err, ErrKitNotInstalled), "error = %v", err)
}

func TestStatus_DoesNotWrite(t *testing.T) {
	f := newFixture(t)
	_, err := f.inst.Install(context.Background(), "alpha", false)
	require.NoError(t, err)
	before := snapshot(t, f.project)

	_, err = f.inst.Status("alpha")
	require.NoError(t, err)
	assert.Equal(t, before, snapshot(t, f.project))
}
