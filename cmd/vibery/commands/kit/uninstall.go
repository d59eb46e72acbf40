package kit

import (
	"io"

	"github.com/spf13/cobra"
)

var uninstallDryRun bool

func init() {
	uninstallCmd.Flags().BoolVar(&uninstallDryRun, "dry-run", false, "Preview changes without writing anything")
	Cmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:     "uninstall <kit>",
	Aliases: []string{"remove", "rm"},
	Short:   "Uninstall a kit",
	Long: `Uninstall a kit from the project.

Only files recorded for the kit in .claude/metadata.json are removed, and
only when they are marked as owned by the kit. The kit's CLAUDE.md section
is removed. Hooks and MCP servers merged at install time are left in place
because other kits or your own settings may rely on them.

Examples:
  # Remove a kit
  vibery kit uninstall go-backend

  # See what would be removed
  vibery kit uninstall go-backend --dry-run

See Also: vibery kit installed`,
	Args: cobra.ExactArgs(1),
	RunE: runUninstall,
}

func runUninstall(cmd *cobra.Command, args []string) error {
	return runUninstallWithWriter(cmd, cmd.OutOrStdout(), args[0])
}

// runUninstallWithWriter allows injecting a writer for testing.
func runUninstallWithWriter(cmd *cobra.Command, w io.Writer, id string) error {
	inst, err := newInstaller(cmd, w)
	if err != nil {
		return err
	}
	_, err = inst.Uninstall(cmd.Context(), id, uninstallDryRun)
	return err
}
