package commands

import (
	"fmt"
	"os"

	"schoolsdb/internal/load"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(summaryCmd)
}

var summaryCmd = &cobra.Command{
	Use:   "summary [--db <path/to/Schools.db>]",
	Short: "Lists the tables of the output database with their sizes.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig()
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		db, err := cfg.Database.OpenDB()
		if err != nil {
			return err
		}
		defer db.Close()

		infos, err := load.Inspect(cmd.Context(), db)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Table", "Columns", "Rows"})
		for _, info := range infos {
			t.AppendRow(table.Row{info.Name, info.Columns, info.Rows})
		}
		t.Render()
		return nil
	},
}
