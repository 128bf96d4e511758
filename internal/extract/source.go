package extract

import (
	"context"
	"fmt"

	"schoolsdb/internal/table"
)

// Source describes one extract: where it lives and how its columns are renamed.
type Source struct {
	Name    string
	Path    string
	Renames []table.Rename
	// Narrow keeps only the renamed columns, in mapping order.
	Narrow bool
}

// Targets returns the column names the renames produce, in mapping order.
func (s Source) Targets() []string {
	out := make([]string, len(s.Renames))
	for i, r := range s.Renames {
		out[i] = r.To
	}
	return out
}

// Load reads the source file and applies its renames.
func Load(ctx context.Context, src Source) (*table.Table, error) {
	raw, err := ReadCSV(ctx, src.Path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", src.Name, err)
	}

	renamed, err := raw.Rename(src.Renames)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", src.Name, err)
	}
	if !src.Narrow {
		return renamed, nil
	}

	narrowed, err := renamed.Select(src.Targets()...)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", src.Name, err)
	}
	return narrowed, nil
}
