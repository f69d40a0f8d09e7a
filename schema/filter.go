package schema

import "strings"

// FilterTables removes tables that match the exclude list. An entry matches
// either the qualified schema.table name or the bare table name, case-insensitively.
// It returns a new slice; the input is not modified.
func FilterTables(tables []TableRef, excludeTables []string) []TableRef {
	excludeMap := make(map[string]bool)
	for _, table := range excludeTables {
		excludeMap[strings.ToLower(strings.TrimSpace(table))] = true
	}

	filteredTables := make([]TableRef, 0, len(tables))
	for _, table := range tables {
		if excludeMap[strings.ToLower(table.String())] || excludeMap[strings.ToLower(table.TableName)] {
			continue
		}
		filteredTables = append(filteredTables, table)
	}

	return filteredTables
}
