package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"schoolsdb/internal/pipeline"
	"schoolsdb/lib/telemetry"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var printReport bool

func init() {
	rootCmd.AddCommand(loadCmd)
	rootCmd.PersistentFlags().BoolVar(&printReport, "report", false, "Print the run report after a successful load.")
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Runs the pipeline and replaces the output tables, same as running without a command.",
	Args:  cobra.NoArgs,
	RunE:  runLoad,
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := readConfig()
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	flush := setupTelemetry(ctx)
	defer flush()

	db, err := cfg.Database.OpenDB()
	if err != nil {
		return err
	}
	defer db.Close()

	api := telemetry.SlogAPI{}
	report, err := pipeline.Run(ctx, cfg.Pipeline, db, api)
	if err != nil {
		return err
	}

	perf := telemetry.SamplePerfStats(ctx, api)
	if printReport {
		renderReport(cmd.OutOrStdout(), report, perf)
	}
	return nil
}

func renderReport(out io.Writer, report pipeline.Report, perf telemetry.PerfStats) {
	flagColumns := "none"
	if len(report.Counters.FlagColumns) > 0 {
		flagColumns = strings.Join(report.Counters.FlagColumns, ", ")
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("run %s (%s)", report.RunID, report.Variant))
	t.AppendHeader(table.Row{"Table", "Rows"})
	for _, res := range report.Tables {
		t.AppendRow(table.Row{res.Table, res.Rows})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{"unmapped state codes", report.Counters.UnmappedStates})
	t.AppendRow(table.Row{"conflicting state names", report.Counters.ConflictingStates})
	t.AppendRow(table.Row{"missing student counts", report.Counters.MissingStudentCounts})
	t.AppendRow(table.Row{"invalid student counts", report.Counters.InvalidStudentCounts})
	t.AppendRow(table.Row{"normalized flag columns", flagColumns})
	t.AppendFooter(table.Row{
		report.Duration.Round(time.Millisecond),
		fmt.Sprintf("%d MB rss, %.1f%% cpu", perf.RSSMegabytes, perf.CPUPercent),
	})
	t.Render()
}
