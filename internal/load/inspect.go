package load

import (
	"context"
	"database/sql"
	"fmt"
)

type TableInfo struct {
	Name    string
	Columns int
	Rows    int64
}

// Inspect lists the tables of a database with their column and row counts,
// ordered by name.
func Inspect(ctx context.Context, db *sql.DB) ([]TableInfo, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("inspect: %w", err)
	}
	var names []string
	for rows.Next() {
		var name string
		err = rows.Scan(&name)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("inspect: %w", err)
		}
		names = append(names, name)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("inspect: %w", err)
	}

	out := make([]TableInfo, len(names))
	for i, name := range names {
		info := TableInfo{Name: name}
		err = db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", QuoteIdent(name))).Scan(&info.Rows)
		if err != nil {
			return nil, fmt.Errorf("inspect %s: %w", name, err)
		}
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pragma_table_info(?)", name).Scan(&info.Columns)
		if err != nil {
			return nil, fmt.Errorf("inspect %s: %w", name, err)
		}
		out[i] = info
	}
	return out, nil
}
