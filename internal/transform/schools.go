package transform

import (
	"strconv"

	"schoolsdb/internal/table"
	"schoolsdb/lib/telemetry"
)

// SchoolKeys lead every school table.
var SchoolKeys = []string{"SchoolID", "SchoolYear", StateIDColumn}

type SchoolOptions struct {
	// Drop lists columns removed after the StateID join, the state
	// description column and unused source codes.
	Drop []string
	// Keep narrows the result to these columns when set.
	Keep []string
	// NormalizeFlags rewrites yes/no columns to FlagCodes.
	NormalizeFlags bool
}

type SchoolStats struct {
	// UnmappedState counts rows whose state code is not in the dimension.
	UnmappedState int
	// FlagColumns are the columns rewritten to FlagCodes.
	FlagColumns []string
}

// TransformSchools joins StateID onto a school extract, drops and reorders
// columns and optionally normalizes yes/no columns.
//
// A state code missing from the dimension leaves StateID null, it is counted
// and reported, never an error.
func TransformSchools(schools *table.Table, states States, opts SchoolOptions, api telemetry.API) (*table.Table, SchoolStats, error) {
	var stats SchoolStats

	codes, err := schools.Column(StateColumn)
	if err != nil {
		return nil, stats, err
	}
	ids := make([]table.Cell, len(codes))
	for i, code := range codes {
		id, ok := states.Lookup(code)
		if !ok {
			stats.UnmappedState++
			api.ReportWarning("schools.unmapped-state", i+1, code.Value)
			ids[i] = table.Null()
			continue
		}
		ids[i] = table.Of(strconv.FormatInt(id, 10))
	}
	api.ReportCount("schools.unmapped-state", int64(stats.UnmappedState))

	out, err := schools.WithColumn(StateIDColumn, ids)
	if err != nil {
		return nil, stats, err
	}
	if len(opts.Drop) > 0 {
		out, err = out.Drop(opts.Drop...)
		if err != nil {
			return nil, stats, err
		}
	}
	out, err = out.MoveToFront(SchoolKeys...)
	if err != nil {
		return nil, stats, err
	}
	if len(opts.Keep) > 0 {
		out, err = out.Select(opts.Keep...)
		if err != nil {
			return nil, stats, err
		}
	}

	if opts.NormalizeFlags {
		out, stats.FlagColumns, err = NormalizeFlags(out)
		if err != nil {
			return nil, stats, err
		}
		api.ReportDebug("normalized flag columns", stats.FlagColumns)
	}
	return out, stats, nil
}

func isFlagColumn(distinct []string) bool {
	if len(distinct) == 0 {
		return false
	}
	for _, v := range distinct {
		_, ok := FlagCodes[v]
		if !ok {
			return false
		}
	}
	return true
}

// NormalizeFlags rewrites every text column whose non-null values all belong
// to FlagCodes, other columns are returned untouched.
func NormalizeFlags(t *table.Table) (*table.Table, []string, error) {
	var flagged []string
	for _, column := range t.Columns() {
		kind, err := t.Kind(column)
		if err != nil {
			return nil, nil, err
		}
		if kind != table.KindText {
			continue
		}
		distinct, err := t.Distinct(column)
		if err != nil {
			return nil, nil, err
		}
		if !isFlagColumn(distinct) {
			continue
		}

		cells, err := t.Column(column)
		if err != nil {
			return nil, nil, err
		}
		for i, c := range cells {
			if c.Valid {
				cells[i] = table.Of(FlagCodes[c.Value])
			}
		}
		t, err = t.WithColumn(column, cells)
		if err != nil {
			return nil, nil, err
		}
		flagged = append(flagged, column)
	}
	return t, flagged, nil
}
