package kit

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/vibery/internal/errors"
	"github.com/thoreinstein/vibery/internal/installer"
	"github.com/thoreinstein/vibery/internal/logging"
)

var installedJSON bool

func init() {
	installedCmd.Flags().BoolVar(&installedJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(installedCmd)
}

var installedCmd = &cobra.Command{
	Use:   "installed",
	Short: "List kits installed in the project",
	Long: `List the kits recorded in the project's .claude/metadata.json.

Examples:
  # List installed kits
  vibery kit installed

  # For another project, as JSON
  vibery -C ../api kit installed --json

See Also: vibery kit list, vibery kit uninstall`,
	Args: cobra.NoArgs,
	RunE: runInstalled,
}

func runInstalled(cmd *cobra.Command, _ []string) error {
	return runInstalledWithWriter(cmd, cmd.OutOrStdout())
}

// runInstalledWithWriter allows injecting a writer for testing.
func runInstalledWithWriter(cmd *cobra.Command, w io.Writer) error {
	inst, err := newInstaller(cmd, io.Discard)
	if err != nil {
		return err
	}
	kits, err := inst.Installed()
	if err != nil {
		return err
	}

	if installedJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(kits), "encoding output")
	}
	return outputInstalledTabular(w, kits)
}

func outputInstalledTabular(w io.Writer, kits []installer.InstalledKit) error {
	if len(kits) == 0 {
		fmt.Fprintln(w, "No kits installed")
		return nil
	}

	heading := color.New(color.FgBlue, color.Bold)
	if logging.SupportsColor(w) {
		heading.EnableColor()
	} else {
		heading.DisableColor()
	}
	fmt.Fprintln(w, heading.Sprint("Installed Kits:"))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tVERSION\tFILES\tINSTALLED AT")
	for _, k := range kits {
		fmt.Fprintf(tw, "  %s\t%s\t%d\t%s\n", k.ID, k.Version, k.Files, k.InstalledAt)
	}
	return errors.Wrap(tw.Flush(), "writing output")
}
