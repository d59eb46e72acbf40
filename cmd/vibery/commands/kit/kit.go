// Package kit provides commands for installing and removing kits.
package kit

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/vibery/cmd/vibery/commands/flags"
	"github.com/thoreinstein/vibery/internal/installer"
	"github.com/thoreinstein/vibery/internal/logging"
	"github.com/thoreinstein/vibery/internal/report"
)

// Cmd is the parent command for all kit subcommands.
var Cmd = &cobra.Command{
	Use:   "kit",
	Short: "Manage kits installed in a project",
	Long: `Commands for installing, removing, and listing kits.

Kits are read from the kits directory (--kits-dir, or kits_dir in
config.yaml) and installed into the project root (--project, or the
current directory).`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// newInstaller builds an installer for the configured workspace and kit
// source, reporting progress to w.
func newInstaller(cmd *cobra.Command, w io.Writer) (*installer.Installer, error) {
	ws, err := flags.Workspace()
	if err != nil {
		return nil, err
	}

	rep := report.New(w)
	if flags.Quiet() {
		rep = report.Discard()
	}

	return installer.New(ws, flags.Source(),
		installer.WithReporter(rep),
		installer.WithLogger(logging.FromContext(cmd.Context())),
	), nil
}
