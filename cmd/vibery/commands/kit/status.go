package kit

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/vibery/internal/errors"
	"github.com/thoreinstein/vibery/internal/installer"
	"github.com/thoreinstein/vibery/internal/logging"
)

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status [kit]...",
	Short: "Check installed kit files for local changes",
	Long: `Compare the files recorded for installed kits with what is on disk.

Each file is reported as ok, modified (its content no longer matches the
fingerprint recorded at install time), or missing. With no arguments every
installed kit is checked. Nothing is written.

Examples:
  # Check all installed kits
  vibery kit status

  # Check one kit, as JSON
  vibery kit status go-backend --json

See Also: vibery kit installed, vibery kit uninstall`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	return runStatusWithWriter(cmd, cmd.OutOrStdout(), args)
}

// runStatusWithWriter allows injecting a writer for testing.
func runStatusWithWriter(cmd *cobra.Command, w io.Writer, ids []string) error {
	inst, err := newInstaller(cmd, io.Discard)
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		installed, err := inst.Installed()
		if err != nil {
			return err
		}
		for _, k := range installed {
			ids = append(ids, k.ID)
		}
	}

	statuses := make([]*installer.KitStatus, 0, len(ids))
	for _, id := range ids {
		st, err := inst.Status(id)
		if err != nil {
			return err
		}
		statuses = append(statuses, st)
	}

	if statusJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(statuses), "encoding output")
	}
	outputStatus(w, statuses)
	return nil
}

func outputStatus(w io.Writer, statuses []*installer.KitStatus) {
	if len(statuses) == 0 {
		fmt.Fprintln(w, "No kits installed")
		return
	}

	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)
	bad := color.New(color.FgRed)
	for _, c := range []*color.Color{ok, warn, bad} {
		if logging.SupportsColor(w) {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, st := range statuses {
		if !st.Drifted() {
			fmt.Fprintf(w, "%s %s v%s (%d files)\n", ok.Sprint("✓"), st.ID, st.Version, len(st.Files))
			continue
		}
		fmt.Fprintf(w, "%s %s v%s\n", warn.Sprint("!"), st.ID, st.Version)
		for _, f := range st.Files {
			switch f.State {
			case installer.StateModified:
				fmt.Fprintf(w, "  %s %s\n", warn.Sprint("modified"), f.Path)
			case installer.StateMissing:
				fmt.Fprintf(w, "  %s  %s\n", bad.Sprint("missing"), f.Path)
			}
		}
	}
}
