package kit

import (
	"fmt"
	"io"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/vibery/cmd/vibery/commands/flags"
	"github.com/thoreinstein/vibery/internal/errors"
	kitsrc "github.com/thoreinstein/vibery/internal/kit"
)

var (
	installDryRun      bool
	installInteractive bool
)

func init() {
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "Preview changes without writing anything")
	installCmd.Flags().BoolVarP(&installInteractive, "interactive", "i", false, "Pick kits with a fuzzy finder")
	Cmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <kit>...",
	Short: "Install one or more kits",
	Long: `Install kits into the project.

Each kit's agents, commands, and skills are copied into .claude/, its hook
and MCP server definitions are merged into .claude/settings.json and
.mcp.json, and its CLAUDE.md section is prepended. Existing hooks and MCP
servers are never replaced.

When several kits are given, a kit that fails does not stop the others.
Re-installing a kit replaces its record; the output notes whether the
version was upgraded or downgraded.

Examples:
  # Install two kits
  vibery kit install go-backend testing

  # See what would change
  vibery kit install go-backend --dry-run

  # Pick kits interactively
  vibery kit install -i

See Also: vibery kit list, vibery kit uninstall`,
	Args: func(cmd *cobra.Command, args []string) error {
		if installInteractive {
			return nil
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	return runInstallWithWriter(cmd, cmd.OutOrStdout(), args)
}

// runInstallWithWriter allows injecting a writer for testing.
func runInstallWithWriter(cmd *cobra.Command, w io.Writer, ids []string) error {
	inst, err := newInstaller(cmd, w)
	if err != nil {
		return err
	}

	if installInteractive {
		available, err := inst.Available()
		if err != nil {
			return err
		}
		picked, err := pickKits(available)
		if err != nil {
			return err
		}
		if len(picked) == 0 {
			return nil
		}
		ids = append(ids, picked...)
	}

	if err := inst.InstallAll(cmd.Context(), ids, installDryRun); err != nil {
		return err
	}

	if !installDryRun && !flags.Quiet() {
		fmt.Fprintln(w, "\nDone! Restart Claude Code to apply changes.")
	}
	return nil
}

// pickKits lets the user choose kits with a fuzzy finder. An aborted
// finder selects nothing.
func pickKits(available []kitsrc.Manifest) ([]string, error) {
	if len(available) == 0 {
		return nil, errors.NewUserError(
			errors.New("no kits available"),
			"Set --kits-dir or kits_dir in config.yaml to a directory containing kits")
	}

	idxs, err := fuzzyfinder.FindMulti(
		available,
		func(i int) string {
			return available[i].ID
		},
		fuzzyfinder.WithHeader("Select kits to install (Tab to mark)"),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return previewKit(available[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "selecting kits")
	}

	ids := make([]string, len(idxs))
	for i, idx := range idxs {
		ids[i] = available[idx].ID
	}
	return ids, nil
}

func previewKit(m kitsrc.Manifest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Kit:     %s\n", m.ID)
	fmt.Fprintf(&sb, "Version: %s\n", m.Version)
	if m.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", m.Description)
	}
	return sb.String()
}
