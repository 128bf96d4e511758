package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	configlibsql "schoolsdb/lib/configutil/libsql"

	_ "modernc.org/sqlite"
)

// WriteCSV writes lines joined by newlines to dir/name and returns the path.
func WriteCSV(t testing.TB, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0666)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

// OpenDB opens a fresh sqlite database that is closed when the test ends,
// it lives in a temp dir so it can be reopened by path.
func OpenDB(t testing.TB) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Schools.db")
	db, err := configlibsql.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db, path
}

// QueryStrings runs a query and returns every row with NULLs as "<null>".
func QueryStrings(t testing.TB, db *sql.DB, query string, args ...any) [][]string {
	t.Helper()
	rows, err := db.Query(query, args...)
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		t.Fatal(err)
	}

	var out [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		err = rows.Scan(ptrs...)
		if err != nil {
			t.Fatal(err)
		}
		row := make([]string, len(columns))
		for i, v := range values {
			if !v.Valid {
				row[i] = "<null>"
				continue
			}
			row[i] = v.String
		}
		out = append(out, row)
	}
	err = rows.Err()
	if err != nil {
		t.Fatal(err)
	}
	return out
}
