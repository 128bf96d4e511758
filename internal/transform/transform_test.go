package transform

import (
	"testing"

	"schoolsdb/internal/etlerr"
	"schoolsdb/internal/table"
	"schoolsdb/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const null = "<null>"

func build(t *testing.T, columns []string, rows ...[]string) *table.Table {
	t.Helper()
	cells := make([][]table.Cell, len(rows))
	for i, row := range rows {
		cells[i] = make([]table.Cell, len(row))
		for j, v := range row {
			if v == null {
				cells[i][j] = table.Null()
				continue
			}
			cells[i][j] = table.Of(v)
		}
	}
	tbl, err := table.New(columns, cells)
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func dump(tbl *table.Table) [][]string {
	out := make([][]string, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		out[i] = []string{}
		for _, c := range tbl.Row(i) {
			if !c.Valid {
				out[i] = append(out[i], null)
				continue
			}
			out[i] = append(out[i], c.Value)
		}
	}
	return out
}

func TestStatesScenario(t *testing.T) {
	recorder := telemetry.NewRecorder()
	schools := build(t,
		[]string{"SchoolID", "SchoolYear", "State", "StateName", "FIPST"},
		[]string{"1", "2024-2025", "CA", "california", "06"},
		[]string{"2", "2024-2025", "NY", "new york", "36"},
	)

	states, stats, err := BuildStates(schools, "StateName", recorder)
	require.NoError(t, err)
	require.Zero(t, stats.Conflicting)
	require.Equal(t, []string{"StateID", "State", "StateName"}, states.Table.Columns())
	if diff := cmp.Diff([][]string{
		{"1", "CA", "California"},
		{"2", "NY", "New York"},
	}, dump(states.Table)); diff != "" {
		t.Fatal(diff)
	}

	out, schoolStats, err := TransformSchools(schools, states, SchoolOptions{
		Drop: []string{"StateName", "FIPST"},
	}, recorder)
	require.NoError(t, err)
	require.Zero(t, schoolStats.UnmappedState)
	require.Equal(t, []string{"SchoolID", "SchoolYear", "StateID", "State"}, out.Columns())
	if diff := cmp.Diff([][]string{
		{"1", "2024-2025", "1", "CA"},
		{"2", "2024-2025", "2", "NY"},
	}, dump(out)); diff != "" {
		t.Fatal(diff)
	}
}

func TestBuildStatesDedup(t *testing.T) {
	recorder := telemetry.NewRecorder()
	schools := build(t,
		[]string{"State", "Description"},
		[]string{"WY", "WYOMING"},
		[]string{"AK", "alaska"},
		[]string{"WY", "wyoming"},
		[]string{"AK", "Alaska"},
		[]string{"AK", "Alaska Territory"},
		[]string{"DC", null},
	)

	states, stats, err := BuildStates(schools, "Description", recorder)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Conflicting)
	require.Len(t, recorder.Warnings("states.conflicting-description"), 1)

	if diff := cmp.Diff([][]string{
		{"1", "WY", "Wyoming"},
		{"2", "AK", "Alaska"},
		{"3", "DC", null},
	}, dump(states.Table)); diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, map[string]int64{"WY": 1, "AK": 2, "DC": 3}, states.IDs)

	n, ok := recorder.Count("states.rows")
	require.True(t, ok)
	require.Equal(t, int64(3), n)
}

func TestBuildStatesPunctuatedNames(t *testing.T) {
	recorder := telemetry.NewRecorder()
	schools := build(t,
		[]string{"State", "StateName"},
		[]string{"VI", "U.S. VIRGIN ISLANDS"},
		[]string{"MP", "NORTHERN MARIANA ISLANDS"},
		[]string{"VI", "u.s. virgin islands"},
	)

	states, stats, err := BuildStates(schools, "StateName", recorder)
	require.NoError(t, err)
	require.Zero(t, stats.Conflicting)
	if diff := cmp.Diff([][]string{
		{"1", "VI", "U.S. Virgin Islands"},
		{"2", "MP", "Northern Mariana Islands"},
	}, dump(states.Table)); diff != "" {
		t.Fatal(diff)
	}
}

func TestBuildStatesErrors(t *testing.T) {
	recorder := telemetry.NewRecorder()

	_, _, err := BuildStates(build(t,
		[]string{"State", "StateName"},
		[]string{"CA", "california"},
		[]string{null, "nowhere"},
	), "StateName", recorder)
	require.ErrorIs(t, err, etlerr.ErrDataQuality)
	require.Contains(t, err.Error(), "row 2")

	_, _, err = BuildStates(build(t,
		[]string{"ST", "StateName"},
		[]string{"CA", "california"},
	), "StateName", recorder)
	require.ErrorIs(t, err, etlerr.ErrSchemaMismatch)
}

func TestTransformSchoolsUnmappedState(t *testing.T) {
	recorder := telemetry.NewRecorder()
	schools := build(t,
		[]string{"Name", "SchoolYear", "SchoolID", "State"},
		[]string{"Lincoln", "2024-2025", "1", "CA"},
		[]string{"Guam High", "2024-2025", "2", "GU"},
		[]string{"Nowhere", "2024-2025", "3", null},
	)
	states := States{IDs: map[string]int64{"CA": 1}}

	out, stats, err := TransformSchools(schools, states, SchoolOptions{}, recorder)
	require.NoError(t, err)
	require.Equal(t, 2, stats.UnmappedState)
	require.Len(t, recorder.Warnings("schools.unmapped-state"), 2)
	require.Equal(t, []string{"SchoolID", "SchoolYear", "StateID", "Name", "State"}, out.Columns())

	ids, err := out.Column("StateID")
	require.NoError(t, err)
	require.Equal(t, []table.Cell{table.Of("1"), table.Null(), table.Null()}, ids)
}

func TestTransformSchoolsKeepAndDrop(t *testing.T) {
	recorder := telemetry.NewRecorder()
	schools := build(t,
		[]string{"SchoolYear", "State", "Description", "SchoolID", "Name", "Unused"},
		[]string{"2024-2025", "CA", "california", "1", "Lincoln", "x"},
	)
	states, _, err := BuildStates(schools, "Description", recorder)
	require.NoError(t, err)

	out, _, err := TransformSchools(schools, states, SchoolOptions{
		Drop: []string{"Description"},
		Keep: []string{"SchoolID", "SchoolYear", "StateID", "State", "Name"},
	}, recorder)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"1", "2024-2025", "1", "CA", "Lincoln"}}, dump(out))

	_, _, err = TransformSchools(schools, states, SchoolOptions{
		Drop: []string{"FIPST"},
	}, recorder)
	require.ErrorIs(t, err, etlerr.ErrSchemaMismatch)

	_, _, err = TransformSchools(schools, states, SchoolOptions{
		Keep: []string{"SchoolID", "LEAID"},
	}, recorder)
	require.ErrorIs(t, err, etlerr.ErrSchemaMismatch)
}

func TestNormalizeFlags(t *testing.T) {
	tbl := build(t,
		[]string{"SchoolID", "PK", "KG", "Charter", "Level", "Empty", "NoGrades"},
		[]string{"1", "Yes", "Yes", "Not applicable", "Elementary", null, "No"},
		[]string{"2", "No", null, "Not reported", "High", null, "No"},
		[]string{"3", "Yes", "No", "Yes", "Yes", null, "No"},
	)

	out, flagged, err := NormalizeFlags(tbl)
	require.NoError(t, err)
	require.Equal(t, []string{"PK", "KG", "Charter", "NoGrades"}, flagged)
	if diff := cmp.Diff([][]string{
		{"1", "Y", "Y", "NA", "Elementary", null, "N"},
		{"2", "N", null, "U", "High", null, "N"},
		{"3", "Y", "N", "Y", "Yes", null, "N"},
	}, dump(out)); diff != "" {
		t.Fatal(diff)
	}

	pk, err := out.Distinct("PK")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Y", "N"}, pk)
}

func TestTransformSchoolsNormalizesFlags(t *testing.T) {
	recorder := telemetry.NewRecorder()
	schools := build(t,
		[]string{"SchoolID", "SchoolYear", "State", "Virtual"},
		[]string{"1", "2024-2025", "CA", "Yes"},
	)
	states := States{IDs: map[string]int64{"CA": 1}}

	out, stats, err := TransformSchools(schools, states, SchoolOptions{NormalizeFlags: true}, recorder)
	require.NoError(t, err)
	require.Equal(t, []string{"Virtual"}, stats.FlagColumns)
	require.Equal(t, [][]string{{"1", "2024-2025", "1", "CA", "Y"}}, dump(out))
}

func TestTransformDemographics(t *testing.T) {
	recorder := telemetry.NewRecorder()
	demographics := build(t,
		[]string{"SchoolID", "StudentCount", "TotalIndicator"},
		[]string{"1", "12", "Education Unit Total"},
		[]string{"1", null, "Subtotal 1"},
		[]string{"1", "7.0", "Subtotal 2"},
		[]string{"2", "-3", "Subtotal 3"},
		[]string{"2", "†", "Subtotal 4"},
	)

	out, stats, err := TransformDemographics(demographics, recorder)
	require.NoError(t, err)
	require.Equal(t, DemographicsStats{Missing: 1, Invalid: 2}, stats)
	require.Len(t, recorder.Warnings("demographics.invalid-student-count"), 2)

	counts, err := out.Column("StudentCount")
	require.NoError(t, err)
	require.Equal(t, []table.Cell{
		table.Of("12"), table.Of("0"), table.Of("7"), table.Of("0"), table.Of("0"),
	}, counts)

	kind, err := out.Kind("StudentCount")
	require.NoError(t, err)
	require.Equal(t, table.KindInteger, kind)

	_, _, err = TransformDemographics(build(t, []string{"SchoolID"}, []string{"1"}), recorder)
	require.ErrorIs(t, err, etlerr.ErrSchemaMismatch)
}
