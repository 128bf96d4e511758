package extract

import (
	"schoolsdb/lib/textutil"
)

type MissingColumn struct {
	Column string
	// Suggestion is the closest header column, empty when nothing is similar.
	Suggestion string
}

// HeaderDiff compares a file header against the renames of a source.
type HeaderDiff struct {
	// Mapped are header columns the source renames.
	Mapped []string
	// Unmapped are header columns kept under their original name, or dropped
	// when the source narrows.
	Unmapped []string
	// Missing are rename sources absent from the header.
	Missing []MissingColumn
}

func CompareHeader(src Source, header []string) HeaderDiff {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}
	renamed := make(map[string]struct{}, len(src.Renames))
	for _, r := range src.Renames {
		renamed[r.From] = struct{}{}
	}

	var diff HeaderDiff
	for _, h := range header {
		_, ok := renamed[h]
		if ok {
			diff.Mapped = append(diff.Mapped, h)
			continue
		}
		diff.Unmapped = append(diff.Unmapped, h)
	}
	for _, r := range src.Renames {
		_, ok := present[r.From]
		if ok {
			continue
		}
		suggestion, _ := textutil.ClosestMatch(r.From, diff.Unmapped)
		diff.Missing = append(diff.Missing, MissingColumn{
			Column:     r.From,
			Suggestion: suggestion,
		})
	}
	return diff
}
