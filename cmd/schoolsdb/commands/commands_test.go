package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"schoolsdb/internal/load"
	"schoolsdb/internal/pipeline"
	configlibsql "schoolsdb/lib/configutil/libsql"
	"schoolsdb/lib/telemetry"
	"schoolsdb/lib/testutil"

	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Cleanup(func() {
		configPath = "config.json5"
		variant = ""
		dbPath = ""
		printReport = false
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})
}

func TestReadConfigDefaults(t *testing.T) {
	resetFlags(t)
	configPath = filepath.Join(t.TempDir(), "config.json5")

	cfg, err := readConfig()
	require.NoError(t, err)
	require.Equal(t, pipeline.DefaultConfig(pipeline.VariantDetail), cfg.Pipeline)
	require.Equal(t, configlibsql.Struct{File: defaultDatabaseFile}, cfg.Database)
}

func TestReadConfigFileAndFlags(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	configPath = filepath.Join(dir, "config.json5")
	err := os.WriteFile(configPath, []byte(`{
		// extracts live next to the config
		pipeline: { variant: "directory", data_dir: "extracts" },
	}`), 0666)
	require.NoError(t, err)

	cfg, err := readConfig()
	require.NoError(t, err)
	require.Equal(t, pipeline.VariantDirectory, cfg.Pipeline.Variant)
	require.Equal(t, "extracts", cfg.Pipeline.DataDir)
	require.Equal(t, defaultDatabaseFile, cfg.Database.File)

	variant = "detail"
	dbPath = filepath.Join(dir, "out.db")
	cfg, err = readConfig()
	require.NoError(t, err)
	require.Equal(t, pipeline.VariantDetail, cfg.Pipeline.Variant)
	require.Equal(t, dbPath, cfg.Database.File)

	variant = "summary"
	_, err = readConfig()
	require.Error(t, err)
}

func TestPickSources(t *testing.T) {
	sources := pipeline.DefaultConfig(pipeline.VariantDetail).Sources()

	picked, err := pickSources(sources, []string{"demographics"})
	require.NoError(t, err)
	require.Len(t, picked, 1)
	require.Equal(t, "demographics", picked[0].Name)

	_, err = pickSources(sources, []string{"demographic"})
	require.ErrorContains(t, err, "unknown source")
}

func writeDirectoryFixtures(t *testing.T, dir string) {
	t.Helper()
	testutil.WriteCSV(t, dir, "us_schools.csv",
		"SCHOOL_YEAR,FIPST,STATENAME,ST,SCH_NAME,STATE_AGENCY_NO,UNION,ST_LEAID,LEAID,ST_SCHID,NCESSCH,SCHID,SHARED_TIME,NSLP_STATUS,NSLP_STATUS_TEXT,VIRTUAL,VIRTUAL_TEXT",
		"2024-2025,78,U.S. VIRGIN ISLANDS,VI,Lockhart,1,,VI-01,7800001,VI-01-001,780000100001,7800001,No,NSLPNO,No,NOTVIRTUAL,Not virtual",
	)
	testutil.WriteCSV(t, dir, "us_schools_demographics.csv",
		"SCHID,SCHOOL_YEAR,GRADE,RACE_ETHNICITY,SEX,STUDENT_COUNT,TOTAL_INDICATOR,DMS_FLAG",
		"7800001,2024-2025,Grade 1,Black,Female,7,Category Set A,Reported",
	)
	testutil.WriteCSV(t, dir, "private_schools.csv", "PPIN", "A0000001")
}

func runRoot(t *testing.T, args ...string) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(ctx))
	return out.String()
}

func TestLoadIsSilentUnlessReportRequested(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	writeDirectoryFixtures(t, dir)
	err := os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{
		pipeline: { variant: "directory", data_dir: "`+dir+`" },
	}`), 0666)
	require.NoError(t, err)
	dbFile := filepath.Join(dir, "Schools.db")

	out := runRoot(t, "--config", filepath.Join(dir, "config.json5"), "--db", dbFile)
	require.Empty(t, out)

	db, err := configlibsql.OpenFile(dbFile)
	require.NoError(t, err)
	defer db.Close()
	require.Equal(t,
		[][]string{{"1", "VI", "U.S. Virgin Islands"}},
		testutil.QueryStrings(t, db, `SELECT * FROM "States"`),
	)

	out = runRoot(t, "load", "--report", "--config", filepath.Join(dir, "config.json5"), "--db", dbFile)
	require.Contains(t, out, "SchoolDemographics")
	require.Contains(t, out, "normalized flag columns")
}

func TestRenderReport(t *testing.T) {
	report := pipeline.Report{
		RunID:   "run-1",
		Variant: pipeline.VariantDetail,
		Tables: []load.Result{
			{Table: pipeline.TableSchoolDetails, Rows: 3},
		},
		Counters: pipeline.Counters{
			UnmappedStates: 2,
			FlagColumns:    []string{"PK", "01", "Charter"},
		},
	}

	var out bytes.Buffer
	renderReport(&out, report, telemetry.PerfStats{})
	require.Contains(t, out.String(), "run-1 (detail)")
	require.Contains(t, out.String(), "SchoolDetails")
	require.Contains(t, out.String(), "PK, 01, Charter")

	out.Reset()
	report.Counters.FlagColumns = nil
	renderReport(&out, report, telemetry.PerfStats{})
	require.Contains(t, out.String(), "none")
}
