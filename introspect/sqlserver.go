package introspect

import (
	_ "github.com/microsoft/go-mssqldb"

	"github.com/kacollins/TablePopulation/schema"
)

const querySQLServerColumns = `
		SELECT c.name, c.system_type_id, TYPE_NAME(c.system_type_id), c.is_identity
		FROM sys.columns c
		INNER JOIN sys.tables t ON c.object_id = t.object_id
		INNER JOIN sys.schemas s ON t.schema_id = s.schema_id
		WHERE s.name = @p1
			AND t.name = @p2
			AND c.is_computed = 0
		ORDER BY c.column_id`

type sqlServer struct{}

func (sqlServer) Name() string { return "sqlserver" }

func (sqlServer) QuoteTable(ref schema.TableRef) string {
	return quoteWith("[", "]", ref.SchemaName) + "." + quoteWith("[", "]", ref.TableName)
}

func (sqlServer) ColumnsQuery() string { return querySQLServerColumns }

func (sqlServer) ColumnsArgs(ref schema.TableRef) []any {
	return []any{ref.SchemaName, ref.TableName}
}
