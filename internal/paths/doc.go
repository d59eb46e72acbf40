// Package paths provides cross-platform path resolution for vibery's own
// directories.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance:
//
//	paths.ConfigDir()      // ~/.config/vibery           (config.yaml)
//	paths.DefaultKitsDir() // ~/.local/share/vibery/stacks (kit bundles)
//
// Per-project destinations (.claude/, .mcp.json, CLAUDE.md) are resolved by
// the workspace package, not here.
package paths
