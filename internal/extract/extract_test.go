package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"schoolsdb/internal/etlerr"
	"schoolsdb/internal/table"
	"schoolsdb/lib/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var demographicsSource = Source{
	Name: "demographics",
	Renames: []table.Rename{
		{From: "SCHID", To: "SchoolID"},
		{From: "STUDENT_COUNT", To: "StudentCount"},
	},
	Narrow: true,
}

func TestReadCSV(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteCSV(t, dir, "schools.csv",
		"\ufeffSCHID,ST,NOTE",
		`1,CA,"quoted, with comma"`,
		"2,NA,",
		"",
		"3,NY,N/A",
	)

	tbl, err := ReadCSV(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, []string{"SCHID", "ST", "NOTE"}, tbl.Columns())
	require.Equal(t, 3, tbl.Len())

	expected := [][]table.Cell{
		{table.Of("1"), table.Of("CA"), table.Of("quoted, with comma")},
		{table.Of("2"), table.Null(), table.Null()},
		{table.Of("3"), table.Of("NY"), table.Null()},
	}
	for i, row := range expected {
		if diff := cmp.Diff(row, tbl.Row(i)); diff != "" {
			t.Fatalf("row %d: %s", i, diff)
		}
	}
}

func TestReadCSVErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadCSV(context.Background(), filepath.Join(dir, "missing.csv"))
	require.ErrorIs(t, err, etlerr.ErrSourceUnavailable)
	require.ErrorIs(t, err, os.ErrNotExist)

	empty := testutil.WriteCSV(t, dir, "empty.csv")
	_, err = ReadCSV(context.Background(), empty)
	require.ErrorIs(t, err, etlerr.ErrSourceUnavailable)

	ragged := testutil.WriteCSV(t, dir, "ragged.csv", "A,B", "1,2,3")
	_, err = ReadCSV(context.Background(), ragged)
	require.ErrorIs(t, err, etlerr.ErrSourceUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok := testutil.WriteCSV(t, dir, "ok.csv", "A", "1")
	_, err = ReadCSV(ctx, ok)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	src := demographicsSource
	src.Path = testutil.WriteCSV(t, dir, "demographics.csv",
		"STUDENT_COUNT,LEAID,SCHID",
		"12,9,1",
	)

	tbl, err := Load(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, []string{"SchoolID", "StudentCount"}, tbl.Columns())
	require.Equal(t, []table.Cell{table.Of("1"), table.Of("12")}, tbl.Row(0))

	src.Narrow = false
	tbl, err = Load(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, []string{"StudentCount", "LEAID", "SchoolID"}, tbl.Columns())
}

func TestLoadSchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	src := demographicsSource
	src.Path = testutil.WriteCSV(t, dir, "demographics.csv",
		"STUDENT_CNT,SCHID",
		"12,1",
	)

	_, err := Load(context.Background(), src)
	require.ErrorIs(t, err, etlerr.ErrSchemaMismatch)
	require.Contains(t, err.Error(), "StudentCount")
}

func TestCompareHeader(t *testing.T) {
	diff := CompareHeader(demographicsSource, []string{"SCHID", "STUDENT_CNT", "LEAID"})
	require.Equal(t, []string{"SCHID"}, diff.Mapped)
	require.Equal(t, []string{"STUDENT_CNT", "LEAID"}, diff.Unmapped)
	require.Equal(t, []MissingColumn{
		{Column: "STUDENT_COUNT", Suggestion: "STUDENT_CNT"},
	}, diff.Missing)

	header, err := ReadHeader(testutil.WriteCSV(t, t.TempDir(), "h.csv", "\ufeffSCHID,X", "1,2"))
	require.NoError(t, err)
	require.Equal(t, []string{"SCHID", "X"}, header)
}
