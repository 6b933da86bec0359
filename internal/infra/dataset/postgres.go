package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/runfit/internal/domain/catalog"
)

// PostgresLoader reads the catalog table from Postgres.
type PostgresLoader struct {
	pool   *pgxpool.Pool
	table  string
	logger *slog.Logger
}

// NewPostgresLoader constructs the loader. table may be schema-qualified.
func NewPostgresLoader(pool *pgxpool.Pool, table string, logger *slog.Logger) *PostgresLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresLoader{
		pool:   pool,
		table:  strings.TrimSpace(table),
		logger: logger.With("component", "dataset.postgres"),
	}
}

// Describe implements Loader.
func (l *PostgresLoader) Describe() string {
	return "postgres:" + l.table
}

// Close releases the connection pool. The catalog is read once at startup, so
// the pool is not needed after Load.
func (l *PostgresLoader) Close() error {
	if l.pool != nil {
		l.pool.Close()
	}
	return nil
}

// Load implements Loader.
func (l *PostgresLoader) Load(ctx context.Context) (catalog.Dataset, error) {
	if l.table == "" {
		return catalog.Dataset{}, fmt.Errorf("postgres table is not configured")
	}
	ident := pgx.Identifier(strings.Split(l.table, ".")).Sanitize()
	rows, err := l.pool.Query(ctx, "SELECT * FROM "+ident)
	if err != nil {
		return catalog.Dataset{}, fmt.Errorf("query %s: %w", l.table, err)
	}
	defer rows.Close()

	var b tableBuilder
	for _, fd := range rows.FieldDescriptions() {
		b.columns = append(b.columns, fd.Name)
	}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return catalog.Dataset{}, fmt.Errorf("scan %s: %w", l.table, err)
		}
		for i, v := range values {
			values[i] = pgValue(v)
		}
		b.add(values)
	}
	if err := rows.Err(); err != nil {
		return catalog.Dataset{}, fmt.Errorf("iterate %s: %w", l.table, err)
	}
	l.logger.Info("dataset table read", "table", l.table, "rows", len(b.rows))
	return catalog.NewDataset(b.columns, b.rows), nil
}

func pgValue(v any) any {
	n, ok := v.(pgtype.Numeric)
	if !ok {
		return v
	}
	if !n.Valid {
		return nil
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return nil
	}
	return f.Float64
}

var (
	_ Loader    = (*PostgresLoader)(nil)
	_ io.Closer = (*PostgresLoader)(nil)
)
