package generator

import (
	"bytes"
	"cmp"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/pkg/errors"

	"github.com/kacollins/TablePopulation/schema"
)

// Null is the literal written for NULL values.
const Null = "NULL"

const (
	dateLayout           = "2006-01-02"
	dateTimeLayout       = "2006-01-02T15:04:05.9999999"
	dateTimeOffsetLayout = "2006-01-02T15:04:05.9999999Z07:00"
)

// Escape doubles single quotes so s can sit inside a string literal.
func Escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// FormatValue renders a value for the SELECT list: NULL, 0/1 for boolean
// columns, otherwise a quoted and escaped string literal.
func FormatValue(v any, column schema.ColumnMeta) (string, error) {
	if v == nil {
		return Null, nil
	}
	if column.IsBoolean() {
		return formatBool(v)
	}
	return "'" + Escape(Text(v, column)) + "'", nil
}

// FormatRaw renders a value without quoting, as used for the first column.
func FormatRaw(v any, column schema.ColumnMeta) string {
	if v == nil {
		return Null
	}
	if column.IsBoolean() {
		if s, err := formatBool(v); err == nil {
			return s
		}
	}
	return Text(v, column)
}

// Text converts a driver value to its plain text form.
func Text(v any, column schema.ColumnMeta) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		if isUniqueIdentifier(column) && len(x) == 16 {
			var id mssql.UniqueIdentifier
			if err := id.Scan(x); err == nil {
				return id.String()
			}
		}
		return string(x)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return formatTime(x, column)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

func formatBool(v any) (string, error) {
	var (
		b   bool
		err error
	)
	switch x := v.(type) {
	case bool:
		b = x
	default:
		b, err = strconv.ParseBool(strings.TrimSpace(Text(v, schema.ColumnMeta{})))
		if err != nil {
			return "", errors.Errorf("invalid boolean value %q", Text(v, schema.ColumnMeta{}))
		}
	}
	if b {
		return "1", nil
	}
	return "0", nil
}

func formatTime(t time.Time, column schema.ColumnMeta) string {
	name := strings.ToLower(column.TypeName)
	switch {
	case name == "date" || (name == "" && column.SystemTypeID == schema.TypeDate):
		return t.Format(dateLayout)
	case name == "datetimeoffset" || strings.HasPrefix(name, "timestamp with time zone") ||
		name == "timestamptz" || (name == "" && column.SystemTypeID == schema.TypeDateTimeOffset):
		return t.Format(dateTimeOffsetLayout)
	}
	return t.Format(dateTimeLayout)
}

func isUniqueIdentifier(column schema.ColumnMeta) bool {
	return strings.EqualFold(column.TypeName, "uniqueidentifier") ||
		(column.TypeName == "" && column.SystemTypeID == schema.TypeUniqueIdentifier)
}

// SortRows returns a copy of rows ordered by the value at position key.
// NULLs sort first; the sort is stable.
func SortRows(rows []schema.Row, key int) []schema.Row {
	sorted := make([]schema.Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareValues(valueAt(sorted[i], key), valueAt(sorted[j], key)) < 0
	})
	return sorted
}

func valueAt(row schema.Row, i int) any {
	if i < 0 || i >= len(row) {
		return nil
	}
	return row[i]
}

func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if x, ok := toInt64(a); ok {
		if y, ok := toInt64(b); ok {
			return cmp.Compare(x, y)
		}
	}
	if x, ok := toFloat64(a); ok {
		if y, ok := toFloat64(b); ok {
			return cmp.Compare(x, y)
		}
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case []byte:
		if y, ok := b.([]byte); ok {
			return bytes.Compare(x, y)
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int32:
		return int64(x), true
	case int16:
		return int64(x), true
	case int8:
		return int64(x), true
	case int:
		return int64(x), true
	case uint8:
		return int64(x), true
	}
	return 0, false
}

// toFloat64 also accepts []byte, which is how go-mssqldb returns decimals.
func toFloat64(v any) (float64, bool) {
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case []byte:
		f, err := strconv.ParseFloat(string(x), 64)
		return f, err == nil
	}
	return 0, false
}
