package introspect

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/kacollins/TablePopulation/schema"
)

// Dialect adapts the fetcher to one database engine. Only the catalog query
// and identifier quoting differ between engines; the columns query must
// return name, type id, type name and identity flag in ordinal order.
type Dialect interface {
	// Name is the database/sql driver name.
	Name() string
	// QuoteTable returns the schema-qualified, quoted table name.
	QuoteTable(ref schema.TableRef) string
	// ColumnsQuery returns the catalog query for insertable columns.
	ColumnsQuery() string
	// ColumnsArgs returns the arguments for ColumnsQuery.
	ColumnsArgs(ref schema.TableRef) []any
}

var (
	// SQLServer reads Microsoft SQL Server catalog views.
	SQLServer Dialect = sqlServer{}
	// PostgreSQL reads the PostgreSQL system catalogs.
	PostgreSQL Dialect = postgres{}
	// SQLite reads pragma_table_info.
	SQLite Dialect = sqlite{}
)

// DialectFor returns the dialect registered under name. Common aliases such as
// "mssql" and "postgresql" are accepted.
func DialectFor(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sqlserver", "mssql":
		return SQLServer, nil
	case "postgres", "postgresql", "pg":
		return PostgreSQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return nil, errors.Errorf("unsupported driver %q", name)
}

func quoteWith(open, close, name string) string {
	return open + strings.ReplaceAll(name, close, close+close) + close
}
