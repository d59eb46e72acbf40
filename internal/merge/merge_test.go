package merge

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/vibery/internal/docstore"
	"github.com/thoreinstein/vibery/internal/report"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func decode(t *testing.T, s string) docstore.Document {
	t.Helper()
	doc, err := docstore.Decode(docstore.FormatJSON, []byte(s))
	require.NoError(t, err)
	return doc
}

func TestHooks_AppendsAndDeduplicates(t *testing.T) {
	settings := decode(t, `{"hooks": {"Stop": [{"type": "command", "command": "lint"}]}, "theme": "dark"}`)
	fragment := decode(t, `{"hooks": {
		"Stop": [{"command": "lint", "type": "command"}, {"type": "command", "command": "test"}],
		"PreToolUse": [{"matcher": "Bash"}, {"matcher": "Bash"}]
	}}`)

	added := Hooks(settings, fragment)

	require.Len(t, added, 2)
	assert.Equal(t, "PreToolUse", added[0].Event)
	assert.Equal(t, "Stop", added[1].Event)

	hooks := settings["hooks"].(map[string]any)
	assert.Len(t, hooks["Stop"], 2)
	assert.Len(t, hooks["PreToolUse"], 1)
	assert.Equal(t, "dark", settings["theme"])
}

func TestHooks_LargeIntegersStayDistinct(t *testing.T) {
	settings := decode(t, `{"hooks": {"Stop": [{"command": "lint", "timeout": 9007199254740992}]}}`)
	fragment := decode(t, `{"hooks": {"Stop": [{"command": "lint", "timeout": 9007199254740993}]}}`)

	added := Hooks(settings, fragment)

	assert.Len(t, added, 1)
	assert.Len(t, settings["hooks"].(map[string]any)["Stop"], 2)
}

func TestHooks_NoHooksKeyInFragment(t *testing.T) {
	settings := docstore.Document{}
	assert.Empty(t, Hooks(settings, decode(t, `{"other": 1}`)))
	assert.NotContains(t, settings, HooksKey)
}

func TestHooks_ReplacesMalformedTargets(t *testing.T) {
	settings := decode(t, `{"hooks": ["not", "an", "object"]}`)
	added := Hooks(settings, decode(t, `{"hooks": {"Stop": [{"command": "x"}]}}`))
	assert.Len(t, added, 1)

	settings = decode(t, `{"hooks": {"Stop": "oops"}}`)
	added = Hooks(settings, decode(t, `{"hooks": {"Stop": [{"command": "x"}]}}`))
	assert.Len(t, added, 1)
	assert.Len(t, settings["hooks"].(map[string]any)["Stop"], 1)
}

func TestMCPs_FirstWriterWins(t *testing.T) {
	config := decode(t, `{"mcpServers": {"github": {"command": "first"}}}`)
	fragment := decode(t, `{"mcpServers": {"github": {"command": "second"}, "linear": {"command": "npx"}}}`)

	added := MCPs(config, fragment)

	assert.Equal(t, []string{"linear"}, added)
	servers := config["mcpServers"].(map[string]any)
	assert.Equal(t, map[string]any{"command": "first"}, servers["github"])
	assert.Contains(t, servers, "linear")
}

func TestMergeHooks_Idempotent(t *testing.T) {
	root := t.TempDir()
	hooksDir := filepath.Join(root, "kit", "hooks")
	writeFile(t, filepath.Join(hooksDir, "quality.json"), `{"hooks": {"PostToolUse": [{"matcher": "Edit", "hooks": [{"type": "command", "command": "gofmt -l . && go vet ./..."}]}]}}`)
	settingsPath := filepath.Join(root, ".claude", "settings.json")
	writeFile(t, settingsPath, `{"permissions": {"allow": ["Bash(ls:*)"]}}`)

	first, err := MergeHooks(context.Background(), hooksDir, settingsPath, false, nil)
	require.NoError(t, err)
	assert.True(t, first.Saved)
	assert.Equal(t, 1, first.Added())
	afterFirst, err := os.ReadFile(settingsPath)
	require.NoError(t, err)

	second, err := MergeHooks(context.Background(), hooksDir, settingsPath, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Added())
	afterSecond, err := os.ReadFile(settingsPath)
	require.NoError(t, err)

	assert.Equal(t, string(afterFirst), string(afterSecond))
	assert.Contains(t, string(afterSecond), "gofmt -l . && go vet ./...")
}

func TestMergeMCPs_PreservesExistingServer(t *testing.T) {
	root := t.TempDir()
	mcpsDir := filepath.Join(root, "kit", "mcps")
	writeFile(t, filepath.Join(mcpsDir, "github.json"), `{"mcpServers": {"github": {"command": "kit-version"}}}`)
	mcpPath := filepath.Join(root, ".mcp.json")
	writeFile(t, mcpPath, `{"mcpServers": {"github": {"command": "user-version"}}}`)

	res, err := MergeMCPs(context.Background(), mcpsDir, mcpPath, false, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Servers)

	doc := docstore.Load(mcpPath)
	servers := doc["mcpServers"].(map[string]any)
	assert.Equal(t, map[string]any{"command": "user-version"}, servers["github"])
}

func TestMergeMCPs_FragmentsInNameOrder(t *testing.T) {
	root := t.TempDir()
	mcpsDir := filepath.Join(root, "mcps")
	writeFile(t, filepath.Join(mcpsDir, "b.json"), `{"mcpServers": {"shared": {"from": "b"}}}`)
	writeFile(t, filepath.Join(mcpsDir, "a.json"), `{"mcpServers": {"shared": {"from": "a"}}}`)
	writeFile(t, filepath.Join(mcpsDir, "notes.txt"), `{"mcpServers": {"ignored": {}}}`)
	mcpPath := filepath.Join(root, ".mcp.json")

	var out bytes.Buffer
	res, err := MergeMCPs(context.Background(), mcpsDir, mcpPath, false, report.NewWithColor(&out, false))
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, res.Servers)
	assert.Len(t, res.Fragments, 2)

	servers := docstore.Load(mcpPath)["mcpServers"].(map[string]any)
	assert.Equal(t, map[string]any{"from": "a"}, servers["shared"])
	assert.NotContains(t, servers, "ignored")
	assert.Equal(t, "  + mcp: shared\n", out.String())
}

func TestMerge_PreviewWritesNothing(t *testing.T) {
	root := t.TempDir()
	hooksDir := filepath.Join(root, "hooks")
	writeFile(t, filepath.Join(hooksDir, "h.json"), `{"hooks": {"Stop": [{"command": "x"}]}}`)
	mcpsDir := filepath.Join(root, "mcps")
	writeFile(t, filepath.Join(mcpsDir, "m.json"), `{"mcpServers": {"x": {}}}`)
	settingsPath := filepath.Join(root, ".claude", "settings.json")
	mcpPath := filepath.Join(root, ".mcp.json")

	var out bytes.Buffer
	rep := report.NewWithColor(&out, false)
	hookRes, err := MergeHooks(context.Background(), hooksDir, settingsPath, true, rep)
	require.NoError(t, err)
	mcpRes, err := MergeMCPs(context.Background(), mcpsDir, mcpPath, true, rep)
	require.NoError(t, err)

	assert.Equal(t, 1, hookRes.Added())
	assert.Equal(t, 1, mcpRes.Added())
	assert.False(t, hookRes.Saved)
	assert.NoFileExists(t, settingsPath)
	assert.NoFileExists(t, mcpPath)
	assert.Equal(t, "  [DRY] hook: Stop\n  [DRY] mcp: x\n", out.String())
}

func TestMerge_MissingDirIsNoop(t *testing.T) {
	root := t.TempDir()
	settingsPath := filepath.Join(root, ".claude", "settings.json")

	res, err := MergeHooks(context.Background(), filepath.Join(root, "hooks"), settingsPath, false, nil)
	require.NoError(t, err)
	assert.False(t, res.Saved)
	assert.NoFileExists(t, settingsPath)
}

func TestMerge_CorruptFragmentIsEmpty(t *testing.T) {
	root := t.TempDir()
	hooksDir := filepath.Join(root, "hooks")
	writeFile(t, filepath.Join(hooksDir, "bad.json"), `{"hooks": `)
	writeFile(t, filepath.Join(hooksDir, "good.json"), `{"hooks": {"Stop": [{"command": "x"}]}}`)
	settingsPath := filepath.Join(root, "settings.json")

	res, err := MergeHooks(context.Background(), hooksDir, settingsPath, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added())
}
