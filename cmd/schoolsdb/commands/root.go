package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"schoolsdb/internal/load"
	"schoolsdb/internal/pipeline"
	"schoolsdb/lib/configutil"
	configlibsql "schoolsdb/lib/configutil/libsql"
	"schoolsdb/lib/serviceutil"
	"schoolsdb/lib/telemetry"

	"github.com/spf13/cobra"
)

type Config struct {
	Pipeline pipeline.Config     `json:"pipeline"`
	Database configlibsql.Struct `json:"database"`
}

const defaultDatabaseFile = "Schools.db"

var (
	configPath string
	variant    string
	dbPath     string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "schoolsdb",
	Short: "schoolsdb loads school directory extracts into a SQLite database.",
	Long: `schoolsdb reads the school extracts under data/, renames and normalizes
their columns, derives a States table and writes every table to Schools.db,
replacing the tables of a previous run.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
	RunE: runLoad,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "config.json5", "The json5 config file, a missing file means defaults.")
	flags.StringVar(&variant, "variant", "", "The pipeline variant, 'detail' or 'directory'.")
	flags.StringVar(&dbPath, "db", "", "The output database file.")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging.")
}

// readConfig reads the config file and applies flag overrides.
func readConfig() (Config, error) {
	cfg, err := configutil.ReadConfigOr(configPath, Config{
		Database: configlibsql.Struct{File: defaultDatabaseFile},
	})
	if err != nil {
		return cfg, err
	}
	if variant != "" {
		cfg.Pipeline.Variant = pipeline.Variant(variant)
	}
	if dbPath != "" {
		cfg.Database = configlibsql.Struct{File: dbPath}
	}
	cfg.Pipeline, err = cfg.Pipeline.WithDefaults()
	return cfg, err
}

// setupTelemetry starts otel exporters when a telemetry.json5 exists, the
// returned function flushes them.
func setupTelemetry(ctx context.Context) func() {
	t, err := telemetry.SetupFromEnv(ctx, "schoolsdb")
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no telemetry config found, otel export disabled")
		return func() {}
	}
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	pipeline.SetTracerProvider(t.TracerProvider)
	load.SetTracerProvider(t.TracerProvider)
	return func() {
		err := t.Shutdown(context.Background())
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	}
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		serviceutil.Fatal("schoolsdb failed", err)
	}
}
