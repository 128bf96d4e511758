// Package etlerr holds the error taxonomy shared by every stage of the
// pipeline. Stages wrap these sentinels with context so callers can classify
// failures with errors.Is.
package etlerr

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable means a source file is missing, unreadable or not valid CSV.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSchemaMismatch means a column required by a stage is absent.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrDataQuality means the data itself cannot be loaded, ex. a null state code.
	ErrDataQuality = errors.New("data quality")
)

func SourceUnavailable(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, source, err)
}

// MissingColumn builds a schema mismatch for column, suggestion is the
// closest existing column and may be empty.
func MissingColumn(column, suggestion string) error {
	if suggestion != "" {
		return fmt.Errorf("%w: column %q not found (did you mean %q?)", ErrSchemaMismatch, column, suggestion)
	}
	return fmt.Errorf("%w: column %q not found", ErrSchemaMismatch, column)
}

func SchemaMismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSchemaMismatch, fmt.Sprintf(format, args...))
}

func DataQuality(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDataQuality, fmt.Sprintf(format, args...))
}
