package extract

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"schoolsdb/internal/etlerr"
	"schoolsdb/internal/table"
)

const bom = "\ufeff"

// missingTokens are the field values read as null, the same set common
// dataframe tooling treats as missing by default.
var missingTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

func IsMissing(value string) bool {
	_, ok := missingTokens[value]
	return ok
}

func toCell(value string) table.Cell {
	if IsMissing(value) {
		return table.Null()
	}
	return table.Of(value)
}

func openCSV(path string) (*os.File, *csv.Reader, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, etlerr.SourceUnavailable(path, err)
	}

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		f.Close()
		return nil, nil, nil, etlerr.SourceUnavailable(path, fmt.Errorf("file has no header row"))
	}
	if err != nil {
		f.Close()
		return nil, nil, nil, etlerr.SourceUnavailable(path, err)
	}
	header[0] = strings.TrimPrefix(header[0], bom)
	return f, reader, header, nil
}

// ReadHeader returns the column names of a CSV file without reading its rows.
func ReadHeader(path string) ([]string, error) {
	f, _, header, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	f.Close()
	return header, nil
}

// ReadCSV reads a CSV file with a header row into a table.
func ReadCSV(ctx context.Context, path string) (*table.Table, error) {
	f, reader, header, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows [][]table.Cell
	for {
		if len(rows)%4096 == 0 {
			err = ctx.Err()
			if err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, etlerr.SourceUnavailable(path, err)
		}

		row := make([]table.Cell, len(record))
		for i, v := range record {
			row[i] = toCell(v)
		}
		rows = append(rows, row)
	}

	tbl, err := table.New(header, rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tbl, nil
}
