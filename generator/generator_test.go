package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kacollins/TablePopulation/schema"
)

func colorsTable(rows ...schema.Row) *schema.Table {
	return &schema.Table{
		Ref: schema.TableRef{SchemaName: "dbo", TableName: "Colors"},
		Columns: []schema.ColumnMeta{
			{Name: "Id", SystemTypeID: 56, TypeName: "int"},
			{Name: "Name", SystemTypeID: 231, TypeName: "nvarchar"},
		},
		ResultColumns: []string{"Id", "Name"},
		Rows:          rows,
	}
}

func TestGenerate(t *testing.T) {
	table := colorsTable(
		schema.Row{int64(2), "Blue"},
		schema.Row{int64(1), "Red"},
	)

	result, err := GenerateString(table)
	require.NoError(t, err)

	expected := `IF NOT EXISTS (SELECT *
                FROM dbo.Colors
                WHERE Id = 1)
INSERT INTO dbo.Colors
(
    Id
    , Name
)
SELECT
    Id = 1
    , Name = 'Red'

IF NOT EXISTS (SELECT *
                FROM dbo.Colors
                WHERE Id = 2)
INSERT INTO dbo.Colors
(
    Id
    , Name
)
SELECT
    Id = 2
    , Name = 'Blue'

`
	assert.Equal(t, expected, result)
}

func TestGenerateRowOrder(t *testing.T) {
	table := colorsTable(
		schema.Row{int64(3), "Green"},
		schema.Row{int64(1), "Red"},
		schema.Row{int64(2), "Blue"},
	)

	result, err := GenerateString(table)
	require.NoError(t, err)

	first := strings.Index(result, "WHERE Id = 1)")
	second := strings.Index(result, "WHERE Id = 2)")
	third := strings.Index(result, "WHERE Id = 3)")
	require.True(t, first >= 0 && second >= 0 && third >= 0)
	assert.Less(t, first, second)
	assert.Less(t, second, third)

	// The input is left in fetch order.
	assert.Equal(t, int64(3), table.Rows[0][0])
}

func TestGenerateNoRecords(t *testing.T) {
	table := colorsTable()
	table.Columns[0].IsIdentity = true

	result, err := GenerateString(table)
	require.NoError(t, err)

	assert.Equal(t, "--No records to insert", result)
}

func TestGenerateIdentity(t *testing.T) {
	table := colorsTable(schema.Row{int64(1), "Red"})
	table.Columns[0].IsIdentity = true

	result, err := GenerateString(table)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result, "SET IDENTITY_INSERT dbo.Colors ON\n\nIF NOT EXISTS"))
	assert.True(t, strings.HasSuffix(result, "    , Name = 'Red'\n\nSET IDENTITY_INSERT dbo.Colors OFF\n\n"))
}

func TestGenerateWithoutIdentity(t *testing.T) {
	table := colorsTable(schema.Row{int64(1), "Red"})

	result, err := GenerateString(table)
	require.NoError(t, err)

	assert.NotContains(t, result, "IDENTITY_INSERT")
}

func TestGenerateIdentityOverride(t *testing.T) {
	table := colorsTable(schema.Row{int64(1), "Red"})
	table.Ref.Identity = schema.IdentityOn

	result, err := GenerateString(table)
	require.NoError(t, err)
	assert.Contains(t, result, "SET IDENTITY_INSERT dbo.Colors ON")

	table.Ref.Identity = schema.IdentityOff
	table.Columns[0].IsIdentity = true

	result, err = GenerateString(table)
	require.NoError(t, err)
	assert.NotContains(t, result, "IDENTITY_INSERT")
}

func TestGenerateBooleanColumn(t *testing.T) {
	table := colorsTable(
		schema.Row{int64(1), "Red", true},
		schema.Row{int64(2), "Blue", false},
		schema.Row{int64(3), "Green", int64(1)},
		schema.Row{int64(4), "Gray", nil},
	)
	table.Columns = append(table.Columns, schema.ColumnMeta{Name: "IsActive", SystemTypeID: schema.TypeBit, TypeName: "bit"})
	table.ResultColumns = append(table.ResultColumns, "IsActive")

	result, err := GenerateString(table)
	require.NoError(t, err)

	blocks := strings.Split(strings.TrimSuffix(result, "\n\n"), "\n\n")
	require.Len(t, blocks, 4)
	assert.True(t, strings.HasSuffix(blocks[0], "    , IsActive = 1"))
	assert.True(t, strings.HasSuffix(blocks[1], "    , IsActive = 0"))
	assert.True(t, strings.HasSuffix(blocks[2], "    , IsActive = 1"))
	assert.True(t, strings.HasSuffix(blocks[3], "    , IsActive = NULL"))
}

func TestGenerateInvalidBoolean(t *testing.T) {
	table := colorsTable(schema.Row{int64(1), "maybe"})
	table.Columns[1] = schema.ColumnMeta{Name: "Name", SystemTypeID: schema.TypeBit, TypeName: "bit"}

	_, err := Generate(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dbo.Colors")
	assert.Contains(t, err.Error(), `invalid boolean value "maybe"`)
}

func TestGenerateQuoteEscaping(t *testing.T) {
	table := colorsTable(schema.Row{int64(1), "O'Brien"})

	result, err := GenerateString(table)
	require.NoError(t, err)

	assert.Contains(t, result, "    , Name = 'O''Brien'\n")
}

func TestGenerateNull(t *testing.T) {
	table := colorsTable(schema.Row{int64(1), nil})

	result, err := GenerateString(table)
	require.NoError(t, err)

	assert.Contains(t, result, "    , Name = NULL\n")
	assert.NotContains(t, result, "'NULL'")
}

func TestGenerateMapsColumnsByName(t *testing.T) {
	// SELECT * includes a computed column the catalog query leaves out.
	table := &schema.Table{
		Ref: schema.TableRef{SchemaName: "dbo", TableName: "Sizes"},
		Columns: []schema.ColumnMeta{
			{Name: "Id", TypeName: "int"},
			{Name: "Width", TypeName: "int"},
		},
		ResultColumns: []string{"Id", "Area", "Width"},
		Rows:          []schema.Row{{int64(1), int64(9), int64(3)}},
	}

	result, err := GenerateString(table)
	require.NoError(t, err)

	assert.Contains(t, result, "    , Width = '3'\n")
	assert.NotContains(t, result, "Area")
}

func TestGenerateKeyColumnAfterComputedColumn(t *testing.T) {
	table := &schema.Table{
		Ref: schema.TableRef{SchemaName: "dbo", TableName: "Sizes"},
		Columns: []schema.ColumnMeta{
			{Name: "Id", TypeName: "int"},
			{Name: "Name", TypeName: "nvarchar"},
		},
		ResultColumns: []string{"Calc", "Id", "Name"},
		Rows: []schema.Row{
			{int64(20), int64(2), "B"},
			{int64(5), int64(1), "A"},
		},
	}

	result, err := GenerateString(table)
	require.NoError(t, err)

	first := strings.Index(result, "WHERE Id = 1)")
	second := strings.Index(result, "WHERE Id = 2)")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	assert.Less(t, first, second)

	assert.Contains(t, result, "    Id = 1\n    , Name = 'A'\n")
	assert.Contains(t, result, "    Id = 2\n    , Name = 'B'\n")
	assert.NotContains(t, result, "Id = 5")
	assert.NotContains(t, result, "Id = 20")
}

func TestGenerateMissingColumns(t *testing.T) {
	table := colorsTable(schema.Row{int64(1), "Red"})
	table.Columns = nil

	_, err := Generate(table)
	assert.EqualError(t, err, "no column metadata for table dbo.Colors")
}

func TestGenerateUnknownResultColumn(t *testing.T) {
	table := colorsTable(schema.Row{int64(1), "Red"})
	table.ResultColumns = []string{"Id", "Label"}

	_, err := Generate(table)
	assert.EqualError(t, err, "column Name not found in result of table dbo.Colors")
}
