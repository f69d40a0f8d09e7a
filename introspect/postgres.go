package introspect

import (
	_ "github.com/lib/pq"

	"github.com/kacollins/TablePopulation/schema"
)

// Identity covers both GENERATED ... AS IDENTITY and serial columns.
const queryPostgresColumns = `
		SELECT
			a.attname,
			a.atttypid::int,
			format_type(a.atttypid, a.atttypmod),
			a.attidentity <> '' OR COALESCE(pg_get_expr(d.adbin, d.adrelid), '') LIKE 'nextval(%'
		FROM pg_attribute a
		JOIN pg_class c ON c.oid = a.attrelid
		JOIN pg_namespace n ON n.oid = c.relnamespace
		LEFT JOIN pg_attrdef d ON d.adrelid = a.attrelid AND d.adnum = a.attnum
		WHERE n.nspname = $1
			AND c.relname = $2
			AND a.attnum > 0
			AND NOT a.attisdropped
			AND a.attgenerated = ''
		ORDER BY a.attnum`

type postgres struct{}

func (postgres) Name() string { return "postgres" }

func (postgres) QuoteTable(ref schema.TableRef) string {
	return quoteWith(`"`, `"`, ref.SchemaName) + "." + quoteWith(`"`, `"`, ref.TableName)
}

func (postgres) ColumnsQuery() string { return queryPostgresColumns }

func (postgres) ColumnsArgs(ref schema.TableRef) []any {
	return []any{ref.SchemaName, ref.TableName}
}
