// Package flags provides shared settings for CLI commands.
// This package exists to avoid import cycles between the root command
// and noun subpackages such as kit.
package flags

import (
	"os"

	"github.com/thoreinstein/vibery/internal/config"
	"github.com/thoreinstein/vibery/internal/errors"
	"github.com/thoreinstein/vibery/internal/kit"
	"github.com/thoreinstein/vibery/internal/paths"
	"github.com/thoreinstein/vibery/internal/workspace"
)

// cfg holds the resolved configuration, including flag overrides.
var cfg *config.Config

// quiet suppresses progress output.
var quiet bool

// SetQuiet records the value of the -q/--quiet flag.
func SetQuiet(q bool) {
	quiet = q
}

// Quiet reports whether progress output is suppressed.
func Quiet() bool {
	return quiet
}

// SetConfig records the configuration resolved by the root command.
func SetConfig(c *config.Config) {
	cfg = c
}

// Config returns the resolved configuration. Before the root command has
// run it returns defaults.
func Config() *config.Config {
	if cfg == nil {
		return &config.Config{Version: 1, KitsDir: paths.DefaultKitsDir()}
	}
	return cfg
}

// ProjectRoot returns the configured project root, or the current working
// directory when none is set.
func ProjectRoot() (string, error) {
	if root := Config().ProjectRoot; root != "" {
		return root, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "determining working directory")
	}
	return wd, nil
}

// Workspace returns the destination workspace for the configured project.
func Workspace() (*workspace.Workspace, error) {
	root, err := ProjectRoot()
	if err != nil {
		return nil, err
	}
	return workspace.New(root), nil
}

// Source returns the configured kit source.
func Source() *kit.Source {
	dir := Config().KitsDir
	if dir == "" {
		dir = paths.DefaultKitsDir()
	}
	return kit.NewSource(dir)
}
