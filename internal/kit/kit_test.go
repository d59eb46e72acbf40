package kit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/vibery/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newSource(t *testing.T) *Source {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "alpha", "kit.json"), `{"id": "alpha", "version": "1.0.0", "description": "Alpha kit"}`)
	writeFile(t, filepath.Join(root, "alpha", "commands", "run.md"), "# run\n")
	writeFile(t, filepath.Join(root, "beta", "kit.yaml"), "version: 2.1.0\ndescription: Beta kit\n")
	writeFile(t, filepath.Join(root, "gamma", "kit.toml"), "id = \"gamma\"\n")
	writeFile(t, filepath.Join(root, "no-manifest", "agents", "a.md"), "a")
	writeFile(t, filepath.Join(root, ".hidden", "kit.json"), `{"id": "hidden"}`)
	writeFile(t, filepath.Join(root, "README.md"), "kits")
	return NewSource(root)
}

func TestSource_Load(t *testing.T) {
	src := newSource(t)

	tests := []struct {
		id   string
		want Manifest
	}{
		{"alpha", Manifest{ID: "alpha", Version: "1.0.0", Description: "Alpha kit"}},
		{"beta", Manifest{ID: "beta", Version: "2.1.0", Description: "Beta kit"}},
		{"gamma", Manifest{ID: "gamma", Version: DefaultVersion}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			k, err := src.Load(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, k.Manifest)
			assert.Equal(t, filepath.Join(src.Root, tt.id), k.Dir)
		})
	}
}

func TestSource_LoadNotFound(t *testing.T) {
	src := newSource(t)

	for _, id := range []string{"missing", "no-manifest", "", "..", "../alpha", "alpha/commands", `a\b`} {
		t.Run(id, func(t *testing.T) {
			_, err := src.Load(id)
			assert.True(t, errors.Is(err, ErrKitNotFound), "Load(%q) error = %v", id, err)
		})
	}
}

func TestSource_LoadCorruptManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "broken", "kit.json"), "{oops")

	k, err := NewSource(root).Load("broken")
	require.NoError(t, err)
	assert.Equal(t, Manifest{ID: "broken", Version: DefaultVersion}, k.Manifest)
}

func TestSource_JSONManifestWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "dual", "kit.json"), `{"version": "1.0.0"}`)
	writeFile(t, filepath.Join(root, "dual", "kit.yaml"), "version: 9.9.9\n")

	k, err := NewSource(root).Load("dual")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", k.Manifest.Version)
}

func TestSource_List(t *testing.T) {
	got, err := newSource(t).List()
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, m := range got {
		ids[i] = m.ID
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, ids)
}

func TestSource_ListMissingRoot(t *testing.T) {
	got, err := NewSource(filepath.Join(t.TempDir(), "nope")).List()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestKit_Prepend(t *testing.T) {
	src := newSource(t)
	k, err := src.Load("alpha")
	require.NoError(t, err)

	content, err := k.Prepend()
	require.NoError(t, err)
	assert.Empty(t, content)

	writeFile(t, k.PrependPath(), "<!-- VIBERY-KIT:alpha:1.0.0 -->\n<!-- /VIBERY-KIT:alpha -->\n")
	content, err = k.Prepend()
	require.NoError(t, err)
	assert.Contains(t, content, "VIBERY-KIT:alpha")
	assert.Equal(t, filepath.Join(k.Dir, "commands"), k.SubDir("commands"))
}
