// Package introspect fetches table contents and column metadata.
// It supports SQL Server, PostgreSQL and SQLite through the Dialect interface.
//
// Basic usage:
//
//	fetcher := introspect.New(db, introspect.WithDialect(introspect.SQLServer))
//	table, err := fetcher.Table(ctx, schema.TableRef{SchemaName: "dbo", TableName: "Colors"})
//
// Each query checks a connection out of the pool right before it runs and
// returns it when the query finishes, whether or not it succeeded.
package introspect

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/kacollins/TablePopulation/schema"
)

// Fetcher reads rows and catalog metadata for tables.
type Fetcher struct {
	db *sql.DB
	o  *options
}

// New returns a Fetcher reading from db.
func New(db *sql.DB, opts ...Option) *Fetcher {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Fetcher{db: db, o: o}
}

// Open connects to a database using the dialect's driver and pings it.
func Open(ctx context.Context, dialect Dialect, connStr string) (*sql.DB, error) {
	db, err := sql.Open(dialect.Name(), connStr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return db, nil
}

// Dialect returns the dialect the fetcher was configured with.
func (f *Fetcher) Dialect() Dialect {
	return f.o.dialect
}

// Table fetches every row of the table along with its insertable columns.
// On error the returned table is empty but non-nil, so callers may carry on
// with it.
func (f *Fetcher) Table(ctx context.Context, ref schema.TableRef) (*schema.Table, error) {
	table := schema.EmptyTable(ref)

	resultColumns, rows, err := f.Rows(ctx, ref)
	if err != nil {
		return table, errors.Wrapf(err, "failed to get rows for table %s", ref)
	}

	columns, err := f.Columns(ctx, ref)
	if err != nil {
		return table, errors.Wrapf(err, "failed to get columns for table %s", ref)
	}

	table.ResultColumns = resultColumns
	table.Rows = rows
	table.Columns = columns

	zerolog.Ctx(ctx).Debug().Str("table", ref.String()).Int("rows", len(rows)).
		Int("columns", len(columns)).Msg("Fetched table")

	return table, nil
}

// Rows runs SELECT * against the table and returns the result column names
// and all rows, fully read into memory.
func (f *Fetcher) Rows(ctx context.Context, ref schema.TableRef) ([]string, []schema.Row, error) {
	query := "SELECT * FROM " + f.o.dialect.QuoteTable(ref)

	var (
		names  []string
		result []schema.Row
	)
	err := f.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		names, err = rows.Columns()
		if err != nil {
			return err
		}

		for rows.Next() {
			values := make(schema.Row, len(names))
			dest := make([]any, len(names))
			for i := range values {
				dest[i] = &values[i]
			}
			if err := rows.Scan(dest...); err != nil {
				return err
			}
			result = append(result, values)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, nil, err
	}

	return names, result, nil
}

// Columns returns the table's non-computed columns in ordinal order.
func (f *Fetcher) Columns(ctx context.Context, ref schema.TableRef) ([]schema.ColumnMeta, error) {
	var columns []schema.ColumnMeta
	err := f.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, f.o.dialect.ColumnsQuery(), f.o.dialect.ColumnsArgs(ref)...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var col schema.ColumnMeta
			if err := rows.Scan(&col.Name, &col.SystemTypeID, &col.TypeName, &col.IsIdentity); err != nil {
				return err
			}
			columns = append(columns, col)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return columns, nil
}

func (f *Fetcher) withConn(ctx context.Context, fn func(*sql.Conn) error) error {
	conn, err := f.db.Conn(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to open connection")
	}
	defer conn.Close()

	return fn(conn)
}
