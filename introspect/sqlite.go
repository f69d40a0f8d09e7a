package introspect

import (
	_ "modernc.org/sqlite"

	"github.com/kacollins/TablePopulation/schema"
)

// An INTEGER PRIMARY KEY that is the table's only key column aliases the
// rowid, which is SQLite's identity column. pragma_table_info omits
// generated columns.
const querySQLiteColumns = `
		SELECT
			p.name,
			0,
			p.type,
			CASE WHEN p.pk = 1
				AND upper(p.type) = 'INTEGER'
				AND (SELECT count(*) FROM pragma_table_info(?1, ?2) WHERE pk > 0) = 1
			THEN 1 ELSE 0 END
		FROM pragma_table_info(?1, ?2) AS p
		ORDER BY p.cid`

type sqlite struct{}

func (sqlite) Name() string { return "sqlite" }

func (sqlite) QuoteTable(ref schema.TableRef) string {
	return quoteWith(`"`, `"`, ref.SchemaName) + "." + quoteWith(`"`, `"`, ref.TableName)
}

func (sqlite) ColumnsQuery() string { return querySQLiteColumns }

func (sqlite) ColumnsArgs(ref schema.TableRef) []any {
	return []any{ref.TableName, ref.SchemaName}
}
