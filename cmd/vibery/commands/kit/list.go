package kit

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/vibery/internal/errors"
	"github.com/thoreinstein/vibery/internal/logging"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available kits",
	Long: `List the kits in the kits directory.

The INSTALLED column shows the version installed in the current project,
if any.

Examples:
  # List kits
  vibery kit list

  # Output as JSON
  vibery kit list --json

See Also: vibery kit installed, vibery kit install`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// listEntry represents a kit in JSON output format.
type listEntry struct {
	ID          string `json:"id"`
	Version     string `json:"version"`
	Description string `json:"description"`
	Installed   string `json:"installed,omitempty"`
}

func runList(cmd *cobra.Command, _ []string) error {
	return runListWithWriter(cmd, cmd.OutOrStdout())
}

// runListWithWriter allows injecting a writer for testing.
func runListWithWriter(cmd *cobra.Command, w io.Writer) error {
	inst, err := newInstaller(cmd, io.Discard)
	if err != nil {
		return err
	}

	available, err := inst.Available()
	if err != nil {
		return err
	}
	installed, err := inst.Installed()
	if err != nil {
		return err
	}
	versions := make(map[string]string, len(installed))
	for _, k := range installed {
		versions[k.ID] = k.Version
	}

	entries := make([]listEntry, len(available))
	for i, m := range available {
		entries[i] = listEntry{
			ID:          m.ID,
			Version:     m.Version,
			Description: m.Description,
			Installed:   versions[m.ID],
		}
	}

	if listJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(entries), "encoding output")
	}
	return outputListTabular(w, entries)
}

func outputListTabular(w io.Writer, entries []listEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No kits available")
		return nil
	}

	heading := color.New(color.FgBlue, color.Bold)
	if logging.SupportsColor(w) {
		heading.EnableColor()
	} else {
		heading.DisableColor()
	}
	fmt.Fprintln(w, heading.Sprint("Available Kits:"))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tVERSION\tINSTALLED\tDESCRIPTION")
	for _, e := range entries {
		installed := "-"
		if e.Installed != "" {
			installed = e.Installed
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", e.ID, e.Version, installed, truncate(e.Description, 60))
	}
	return errors.Wrap(tw.Flush(), "writing output")
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
