// Package generator renders fetched tables as idempotent INSERT scripts.
//
// Every row becomes one block guarded by an existence check on the table's
// first column:
//
//	IF NOT EXISTS (SELECT *
//	                FROM dbo.Colors
//	                WHERE Id = 1)
//	INSERT INTO dbo.Colors
//	(
//	    Id
//	    , Name
//	)
//	SELECT
//	    Id = 1
//	    , Name = 'Red'
//
// Blocks are ordered by the first column's value. Tables with an identity
// column are wrapped in SET IDENTITY_INSERT ON/OFF.
package generator

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/kacollins/TablePopulation/schema"
)

// NoRecords is the whole script for a table without rows.
const NoRecords = "--No records to insert"

const tab = "    "

// Generate renders the INSERT script for a table.
// Rows are sorted by the first catalog column; the input table is not modified.
func Generate(t *schema.Table) ([]byte, error) {
	if len(t.Rows) == 0 {
		return []byte(NoRecords), nil
	}
	if len(t.Columns) == 0 {
		return nil, errors.Errorf("no column metadata for table %s", t.Ref)
	}

	positions, err := columnPositions(t)
	if err != nil {
		return nil, err
	}

	var builder strings.Builder
	tableName := t.Ref.String()
	identity := t.HasIdentity()

	if identity {
		builder.WriteString(fmt.Sprintf("SET IDENTITY_INSERT %s ON\n\n", tableName))
	}

	for _, row := range SortRows(t.Rows, positions[0]) {
		if err := generateInsert(&builder, tableName, t.Columns, positions, row); err != nil {
			return nil, errors.Wrapf(err, "failed to render row of table %s", tableName)
		}
	}

	if identity {
		builder.WriteString(fmt.Sprintf("SET IDENTITY_INSERT %s OFF\n\n", tableName))
	}

	return []byte(builder.String()), nil
}

// GenerateString is a convenience wrapper that returns the script as a string.
func GenerateString(t *schema.Table) (string, error) {
	result, err := Generate(t)
	if err != nil {
		return "", err
	}
	return string(result), nil
}

// columnPositions maps each catalog column to its index in the result row.
// Without result column names, columns are assumed to be in result order.
func columnPositions(t *schema.Table) ([]int, error) {
	positions := make([]int, len(t.Columns))
	if len(t.ResultColumns) == 0 {
		for i := range t.Columns {
			positions[i] = i
		}
		return positions, nil
	}

	index := make(map[string]int, len(t.ResultColumns))
	for i, name := range t.ResultColumns {
		if _, ok := index[strings.ToLower(name)]; !ok {
			index[strings.ToLower(name)] = i
		}
	}
	for i, column := range t.Columns {
		pos, ok := index[strings.ToLower(column.Name)]
		if !ok {
			return nil, errors.Errorf("column %s not found in result of table %s", column.Name, t.Ref)
		}
		positions[i] = pos
	}
	return positions, nil
}

func generateInsert(builder *strings.Builder, tableName string, columns []schema.ColumnMeta, positions []int, row schema.Row) error {
	if positions[0] >= len(row) {
		return errors.Errorf("column %s missing from row", columns[0].Name)
	}
	key := FormatRaw(row[positions[0]], columns[0])
	first := columns[0].Name

	builder.WriteString("IF NOT EXISTS (SELECT *\n")
	builder.WriteString(fmt.Sprintf("%s%s%s%sFROM %s\n", tab, tab, tab, tab, tableName))
	builder.WriteString(fmt.Sprintf("%s%s%s%sWHERE %s = %s)\n", tab, tab, tab, tab, first, key))

	builder.WriteString(fmt.Sprintf("INSERT INTO %s\n", tableName))
	builder.WriteString("(\n")
	builder.WriteString(fmt.Sprintf("%s%s\n", tab, first))
	for _, column := range columns[1:] {
		builder.WriteString(fmt.Sprintf("%s, %s\n", tab, column.Name))
	}
	builder.WriteString(")\n")

	builder.WriteString("SELECT\n")
	builder.WriteString(fmt.Sprintf("%s%s = %s\n", tab, first, key))
	for i, column := range columns[1:] {
		pos := positions[i+1]
		if pos >= len(row) {
			return errors.Errorf("column %s missing from row", column.Name)
		}
		value, err := FormatValue(row[pos], column)
		if err != nil {
			return errors.Wrapf(err, "column %s", column.Name)
		}
		builder.WriteString(fmt.Sprintf("%s, %s = %s\n", tab, column.Name, value))
	}
	builder.WriteString("\n")

	return nil
}
