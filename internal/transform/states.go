package transform

import (
	"strconv"

	"schoolsdb/internal/etlerr"
	"schoolsdb/internal/table"
	"schoolsdb/lib/telemetry"
	"schoolsdb/lib/textutil"
)

const (
	StateColumn   = "State"
	StateIDColumn = "StateID"
)

// States is the state dimension and the lookup used to join it back onto schools.
type States struct {
	Table *table.Table
	IDs   map[string]int64
}

type StateStats struct {
	// Conflicting counts rows whose state code was already seen with a
	// different description.
	Conflicting int
}

// BuildStates derives the state dimension from a school extract: one row per
// distinct state code with a title-cased description and a dense 1-based
// StateID assigned in first-seen order.
func BuildStates(schools *table.Table, descriptionColumn string, api telemetry.API) (States, StateStats, error) {
	projected, err := schools.Select(StateColumn, descriptionColumn)
	if err != nil {
		return States{}, StateStats{}, err
	}

	var stats StateStats
	ids := map[string]int64{}
	descriptions := map[string]table.Cell{}
	var rows [][]table.Cell

	for i := 0; i < projected.Len(); i++ {
		row := projected.Row(i)
		code, description := row[0], row[1]
		if !code.Valid {
			return States{}, stats, etlerr.DataQuality(
				"row %d has no %s code", i+1, StateColumn,
			)
		}

		if description.Valid {
			description = table.Of(textutil.TitleCase(description.Value))
		}

		seen, exists := descriptions[code.Value]
		if exists {
			if seen != description {
				stats.Conflicting++
				api.ReportWarning(
					"states.conflicting-description",
					code.Value, seen.Value, description.Value,
				)
			}
			continue
		}
		descriptions[code.Value] = description

		id := int64(len(rows) + 1)
		ids[code.Value] = id
		rows = append(rows, []table.Cell{
			table.Of(strconv.FormatInt(id, 10)),
			code,
			description,
		})
	}

	dimension, err := table.New([]string{StateIDColumn, StateColumn, descriptionColumn}, rows)
	if err != nil {
		return States{}, stats, err
	}
	api.ReportCount("states.rows", int64(len(rows)))
	return States{Table: dimension, IDs: ids}, stats, nil
}

// Lookup returns the StateID of a state code.
func (s States) Lookup(code table.Cell) (int64, bool) {
	if !code.Valid {
		return 0, false
	}
	id, ok := s.IDs[code.Value]
	return id, ok
}
