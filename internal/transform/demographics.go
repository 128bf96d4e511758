package transform

import (
	"math"
	"strconv"
	"strings"

	"schoolsdb/internal/table"
	"schoolsdb/lib/telemetry"
)

const StudentCountColumn = "StudentCount"

type DemographicsStats struct {
	// Missing counts null student counts stored as 0.
	Missing int
	// Invalid counts negative or non-numeric student counts stored as 0.
	Invalid int
}

// studentCount parses a count, fractional values are truncated.
func studentCount(value string) (int64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// TransformDemographics coerces StudentCount to a non-negative integer,
// null, negative and non-numeric counts become 0.
func TransformDemographics(demographics *table.Table, api telemetry.API) (*table.Table, DemographicsStats, error) {
	var stats DemographicsStats

	counts, err := demographics.Column(StudentCountColumn)
	if err != nil {
		return nil, stats, err
	}
	for i, c := range counts {
		if !c.Valid {
			stats.Missing++
			counts[i] = table.Of("0")
			continue
		}
		n, ok := studentCount(c.Value)
		if !ok {
			stats.Invalid++
			api.ReportWarning("demographics.invalid-student-count", i+1, c.Value)
		}
		counts[i] = table.Of(strconv.FormatInt(n, 10))
	}
	api.ReportCount("demographics.missing-student-count", int64(stats.Missing))
	api.ReportCount("demographics.invalid-student-count", int64(stats.Invalid))

	out, err := demographics.WithColumn(StudentCountColumn, counts)
	if err != nil {
		return nil, stats, err
	}
	return out, stats, nil
}
