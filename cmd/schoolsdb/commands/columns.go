package commands

import (
	"fmt"
	"os"
	"strings"

	"schoolsdb/internal/extract"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(columnsCmd)
}

var columnsCmd = &cobra.Command{
	Use:   "columns [source...]",
	Short: "Compares the header of each source file against its column mapping.",
	Long: `Compares the header of each source file against its column mapping,
listing columns the mapping does not rename and mapped columns missing from
the file. Without arguments every source of the configured variant is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}

		sources := cfg.Pipeline.Sources()
		if len(args) > 0 {
			sources, err = pickSources(sources, args)
			if err != nil {
				return err
			}
		}

		for _, src := range sources {
			header, err := extract.ReadHeader(src.Path)
			if err != nil {
				return err
			}
			renderHeaderDiff(src, extract.CompareHeader(src, header))
		}
		return nil
	},
}

func pickSources(sources []extract.Source, names []string) ([]extract.Source, error) {
	byName := map[string]extract.Source{}
	var known []string
	for _, s := range sources {
		byName[s.Name] = s
		known = append(known, s.Name)
	}

	var out []extract.Source
	for _, name := range names {
		s, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown source %q, expected one of %s", name, strings.Join(known, ", "))
		}
		out = append(out, s)
	}
	return out, nil
}

func renderHeaderDiff(src extract.Source, diff extract.HeaderDiff) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("%s (%s)", src.Name, src.Path))
	t.AppendHeader(table.Row{"Column", "Status", "Suggestion"})

	unmappedStatus := "kept as is"
	if src.Narrow {
		unmappedStatus = "dropped"
	}
	for _, c := range diff.Unmapped {
		t.AppendRow(table.Row{c, unmappedStatus, ""})
	}
	for _, m := range diff.Missing {
		t.AppendRow(table.Row{m.Column, "missing", m.Suggestion})
	}
	t.AppendFooter(table.Row{"mapped", len(diff.Mapped), ""})
	t.Render()
}
