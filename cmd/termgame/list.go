package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/termgame/internal/config"
	"github.com/vovakirdan/termgame/internal/registry"
)

var flagListJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available demos",
	Long: `List the registered demos with the config file each one would load.

Examples:
  termgame list
  termgame list --json`,
	Run: runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListJSON, "json", false, "print the list as JSON")
}

// demoListing is one row of the list command.
type demoListing struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Config string `json:"config,omitempty"`
}

// listDemos describes every registered demo. Demos without a config of
// their own have an empty Config.
func listDemos() []demoListing {
	demos := registry.List()
	out := make([]demoListing, len(demos))
	for i, d := range demos {
		out[i] = demoListing{ID: d.ID, Title: d.Title}
		if config.GetDefaultYAML(d.ID) == nil {
			continue
		}
		src, err := config.Source(d.ID, "")
		if err != nil {
			src = err.Error()
		}
		out[i].Config = src
	}
	return out
}

func writeListing(w io.Writer, demos []demoListing, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(demos)
	}
	if len(demos) == 0 {
		_, err := fmt.Fprintln(w, "No demos available.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tTitle\tConfig")
	fmt.Fprintln(tw, "  --\t-----\t------")
	for _, d := range demos {
		src := d.Config
		if src == "" {
			src = "-"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", d.ID, d.Title, src)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "\nRun 'termgame play <id>' to play a demo.")
	return err
}

func runList(_ *cobra.Command, _ []string) {
	if err := writeListing(os.Stdout, listDemos(), flagListJSON); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
