package load

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"schoolsdb/internal/table"
	"schoolsdb/lib/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const library_name = "schoolsdb.internal.load"

var tracer = otel.Tracer(library_name)
var meter = otel.Meter(library_name)
var rowsLoaded, _ = meter.Int64Counter("schoolsdb.rows_loaded")

func SetTracerProvider(provider trace.TracerProvider) {
	tracer = provider.Tracer(library_name)
}

// NamedTable is a table and the name it is stored under.
type NamedTable struct {
	Name  string
	Table *table.Table
}

type Result struct {
	Table string
	Rows  int64
}

type Loader struct {
	db  *sql.DB
	api telemetry.API
}

func NewLoader(db *sql.DB, api telemetry.API) Loader {
	return Loader{db: db, api: telemetry.NewScopedAPI("load", api)}
}

// QuoteIdent quotes an identifier for use in SQL, grade columns like "01"
// are not valid bare identifiers.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func affinity(kind table.Kind) string {
	switch kind {
	case table.KindInteger:
		return "INTEGER"
	case table.KindReal:
		return "REAL"
	default:
		return "TEXT"
	}
}

func createStatement(name string, columns []string, kinds []table.Kind) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = fmt.Sprintf("%s %s", QuoteIdent(c), affinity(kinds[i]))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", QuoteIdent(name), strings.Join(defs, ", "))
}

func insertStatement(name string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = QuoteIdent(c)
		placeholders[i] = "?"
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		QuoteIdent(name),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)
}

// value converts a cell to the driver value matching its column kind.
func value(cell table.Cell, kind table.Kind) (any, error) {
	if !cell.Valid {
		return nil, nil
	}
	switch kind {
	case table.KindInteger:
		return strconv.ParseInt(cell.Value, 10, 64)
	case table.KindReal:
		return strconv.ParseFloat(cell.Value, 64)
	default:
		return cell.Value, nil
	}
}

func wrapReplace(name string, err error) error {
	return fmt.Errorf("replace table %s: %w", name, err)
}

// Replace drops any table called name and writes t in its place, all inside
// one transaction.
func (l Loader) Replace(ctx context.Context, name string, t *table.Table) (Result, error) {
	ctx, span := tracer.Start(ctx, "Replace", trace.WithAttributes(
		attribute.String("table", name),
		attribute.Int("rows", t.Len()),
	))
	defer span.End()

	columns := t.Columns()
	if len(columns) == 0 {
		return Result{}, wrapReplace(name, fmt.Errorf("table has no columns"))
	}
	kinds := t.Kinds()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return Result{}, wrapReplace(name, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", QuoteIdent(name)))
	if err != nil {
		return Result{}, wrapReplace(name, err)
	}
	_, err = tx.ExecContext(ctx, createStatement(name, columns, kinds))
	if err != nil {
		return Result{}, wrapReplace(name, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertStatement(name, columns))
	if err != nil {
		return Result{}, wrapReplace(name, err)
	}
	defer stmt.Close()

	args := make([]any, len(columns))
	for i := 0; i < t.Len(); i++ {
		for j, cell := range t.Row(i) {
			args[j], err = value(cell, kinds[j])
			if err != nil {
				return Result{}, wrapReplace(name, fmt.Errorf("row %d column %s: %w", i+1, columns[j], err))
			}
		}
		_, err = stmt.ExecContext(ctx, args...)
		if err != nil {
			return Result{}, wrapReplace(name, fmt.Errorf("row %d: %w", i+1, err))
		}
	}

	err = tx.Commit()
	if err != nil {
		return Result{}, wrapReplace(name, err)
	}

	rows := int64(t.Len())
	rowsLoaded.Add(ctx, rows, metric.WithAttributes(attribute.String("table", name)))
	l.api.ReportCount(name, rows)
	return Result{Table: name, Rows: rows}, nil
}

// ReplaceAll replaces every table in order. Each table is committed on its
// own, a failure leaves the tables before it written.
func (l Loader) ReplaceAll(ctx context.Context, tables []NamedTable) ([]Result, error) {
	results := make([]Result, 0, len(tables))
	for _, nt := range tables {
		res, err := l.Replace(ctx, nt.Name, nt.Table)
		if err != nil {
			l.api.ReportBroken("loader.replace-all", nt.Name, err)
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
