package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/yanqian/runfit/internal/domain/catalog"
)

// SQLiteLoader reads the catalog table from a SQLite database file.
type SQLiteLoader struct {
	path   string
	table  string
	logger *slog.Logger
}

// NewSQLiteLoader constructs the loader. An empty table selects the first
// user table in the database.
func NewSQLiteLoader(path, table string, logger *slog.Logger) *SQLiteLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteLoader{
		path:   strings.TrimSpace(path),
		table:  strings.TrimSpace(table),
		logger: logger.With("component", "dataset.sqlite"),
	}
}

// Describe implements Loader.
func (l *SQLiteLoader) Describe() string {
	return "sqlite:" + l.path
}

// Load implements Loader.
func (l *SQLiteLoader) Load(ctx context.Context) (catalog.Dataset, error) {
	db, err := sql.Open("sqlite", l.path)
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	table := l.table
	if table == "" {
		if table, err = firstUserTable(ctx, db); err != nil {
			return catalog.Dataset{}, err
		}
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table))
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("columns %s: %w", table, err)
	}
	b := tableBuilder{columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return catalog.Dataset{}, fmt.Errorf("scan %s: %w", table, err)
		}
		b.add(values)
	}
	if err := rows.Err(); err != nil {
		return catalog.Dataset{}, fmt.Errorf("iterate %s: %w", table, err)
	}
	l.logger.Info("dataset table read", "table", table, "rows", len(b.rows))
	return catalog.NewDataset(b.columns, b.rows), nil
}

func firstUserTable(ctx context.Context, db *sql.DB) (string, error) {
	const q = `SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name LIMIT 1`
	var name string
	if err := db.QueryRowContext(ctx, q).Scan(&name); err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("sqlite database has no tables")
		}
		return "", fmt.Errorf("discover sqlite table: %w", err)
	}
	return name, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

var _ Loader = (*SQLiteLoader)(nil)
