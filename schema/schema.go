// Package schema defines the data structures shared by the table list loader,
// the database fetcher and the script generator.
package schema

import (
	"fmt"
	"strings"
)

// SQL Server system_type_id values the generator cares about.
const (
	TypeUniqueIdentifier = 36
	TypeDate             = 40
	TypeDateTimeOffset   = 43
	TypeBit              = 104
)

// IdentityMode controls how a table's identity columns are decided.
type IdentityMode int

const (
	// IdentityAuto defers to the catalog metadata.
	IdentityAuto IdentityMode = iota
	// IdentityOn forces SET IDENTITY_INSERT wrapping.
	IdentityOn
	// IdentityOff suppresses SET IDENTITY_INSERT wrapping.
	IdentityOff
)

// TableRef identifies one table listed in the table list file.
type TableRef struct {
	// SchemaName is the schema part of the reference (e.g., "dbo").
	SchemaName string
	// TableName is the table part of the reference.
	TableName string
	// Identity overrides catalog identity detection when not IdentityAuto.
	Identity IdentityMode
}

// String returns the reference as schema.table.
func (r TableRef) String() string {
	return fmt.Sprintf("%s.%s", r.SchemaName, r.TableName)
}

// FileName returns the script file name for the table, schema_table.sql.
func (r TableRef) FileName() string {
	return fmt.Sprintf("%s_%s.sql", r.SchemaName, r.TableName)
}

// ColumnMeta describes one insertable column as reported by the catalog.
type ColumnMeta struct {
	// Name is the column name.
	Name string
	// SystemTypeID is the engine's type identifier (SQL Server system_type_id,
	// PostgreSQL type OID, 0 for SQLite).
	SystemTypeID int
	// TypeName is the engine's type name (e.g., "bit", "boolean", "INTEGER").
	TypeName string
	// IsIdentity reports whether the engine generates the column's values.
	IsIdentity bool
}

// IsBoolean reports whether values of the column render as 0/1.
func (c ColumnMeta) IsBoolean() bool {
	if c.SystemTypeID == TypeBit && c.TypeName == "" {
		return true
	}
	switch strings.ToLower(c.TypeName) {
	case "bit", "bool", "boolean":
		return true
	}
	return false
}

// Row is one fetched row; values line up with Table.ResultColumns.
type Row []any

// Table holds everything fetched for one TableRef.
type Table struct {
	// Ref is the table the data was fetched for.
	Ref TableRef
	// Columns are the insertable columns in ordinal order.
	Columns []ColumnMeta
	// ResultColumns are the column names returned by SELECT *.
	ResultColumns []string
	// Rows are the table contents in fetch order.
	Rows []Row
}

// EmptyTable returns a table with no columns and no rows.
func EmptyTable(ref TableRef) *Table {
	return &Table{Ref: ref}
}

// HasIdentity reports whether inserts need SET IDENTITY_INSERT wrapping.
func (t *Table) HasIdentity() bool {
	switch t.Ref.Identity {
	case IdentityOn:
		return true
	case IdentityOff:
		return false
	}
	for _, c := range t.Columns {
		if c.IsIdentity {
			return true
		}
	}
	return false
}

// Result is the outcome of loading a table list: the tables to script and
// one message per rejected line.
type Result struct {
	Tables []TableRef
	Errors []string
}
