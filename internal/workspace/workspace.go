// Package workspace describes where kit artifacts land inside a project.
package workspace

import (
	"path/filepath"
	"slices"
	"strings"
)

// Deployment categories, in deploy order.
const (
	CategoryAgents   = "agents"
	CategoryCommands = "commands"
	CategorySkills   = "skills"
)

// Categories lists the file-bearing kit subdirectories in deploy order.
var Categories = []string{CategoryAgents, CategoryCommands, CategorySkills}

// Names of the shared artifacts inside a project.
const (
	ClaudeDirName    = ".claude"
	SettingsFileName = "settings.json"
	MetadataFileName = "metadata.json"
	MCPFileName      = ".mcp.json"
	DocFileName      = "CLAUDE.md"
)

// Workspace is the destination layout rooted at a project directory.
type Workspace struct {
	Root string
}

// New returns the workspace for projectRoot. The root is made absolute when
// possible so reported paths are stable.
func New(projectRoot string) *Workspace {
	if abs, err := filepath.Abs(projectRoot); err == nil {
		projectRoot = abs
	}
	return &Workspace{Root: projectRoot}
}

// ClaudeDir returns <root>/.claude.
func (w *Workspace) ClaudeDir() string {
	return filepath.Join(w.Root, ClaudeDirName)
}

// CategoryDir returns the directory that receives files of category cat.
func (w *Workspace) CategoryDir(cat string) string {
	return filepath.Join(w.ClaudeDir(), cat)
}

// SettingsPath returns the shared hook configuration document.
func (w *Workspace) SettingsPath() string {
	return filepath.Join(w.ClaudeDir(), SettingsFileName)
}

// MetadataPath returns the metadata ledger document.
func (w *Workspace) MetadataPath() string {
	return filepath.Join(w.ClaudeDir(), MetadataFileName)
}

// MCPPath returns the shared MCP configuration document.
func (w *Workspace) MCPPath() string {
	return filepath.Join(w.Root, MCPFileName)
}

// DocPath returns the shared documentation document.
func (w *Workspace) DocPath() string {
	return filepath.Join(w.Root, DocFileName)
}

// Rel returns path relative to the workspace root, or path unchanged when
// it lies outside the root.
func (w *Workspace) Rel(path string) string {
	rel, err := filepath.Rel(w.Root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// IsCategory reports whether cat is a known deployment category.
func IsCategory(cat string) bool {
	return slices.Contains(Categories, cat)
}
