// Package tablelist reads the list of tables to script.
//
// Each non-blank line names one table as Schema.Table, optionally followed by
// an identity flag:
//
//	-- reference data
//	dbo.Colors
//	dbo.Sizes,0
//	lookup.States,1
//
// Lines starting with --, // or ' are comments. Malformed lines are collected
// as messages rather than failing the whole list.
package tablelist

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kacollins/TablePopulation/schema"
)

const (
	// ReasonTableFormat is reported for lines that are not Schema.Table.
	ReasonTableFormat = "schema/table format"
	// ReasonIdentityFlag is reported for lines with an unreadable identity flag.
	ReasonIdentityFlag = "identity flag"
)

var commentPrefixes = []string{"--", "//", "'"}

// FormatError describes a rejected table list line.
type FormatError struct {
	// Reason names what was wrong with the line.
	Reason string
	// Line is the line as it appeared in the file.
	Line string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("Invalid %s: %s", e.Reason, e.Line)
}

// IsSkipped reports whether a line is blank or a comment.
func IsSkipped(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// ParseLine parses one table list line. It returns either a TableRef or a
// *FormatError, never both.
func ParseLine(line string) (schema.TableRef, error) {
	var ref schema.TableRef
	if strings.Count(line, ".") != 1 {
		return schema.TableRef{}, &FormatError{Reason: ReasonTableFormat, Line: line}
	}

	name := line
	if idx := strings.Index(line, ","); idx >= 0 {
		name = line[:idx]
		flag := strings.TrimSpace(line[idx+1:])
		if strings.Contains(flag, ",") {
			return schema.TableRef{}, &FormatError{Reason: ReasonTableFormat, Line: line}
		}
		on, err := strconv.ParseBool(flag)
		if err != nil {
			return schema.TableRef{}, &FormatError{Reason: ReasonIdentityFlag, Line: line}
		}
		if on {
			ref.Identity = schema.IdentityOn
		} else {
			ref.Identity = schema.IdentityOff
		}
	}

	parts := strings.Split(name, ".")
	if len(parts) != 2 {
		return schema.TableRef{}, &FormatError{Reason: ReasonTableFormat, Line: line}
	}
	ref.SchemaName = strings.TrimSpace(parts[0])
	ref.TableName = strings.TrimSpace(parts[1])
	if ref.SchemaName == "" || ref.TableName == "" {
		return schema.TableRef{}, &FormatError{Reason: ReasonTableFormat, Line: line}
	}

	return ref, nil
}

// Parse parses every line, skipping blanks and comments. Rejected lines are
// returned as error messages in file order.
func Parse(lines []string) schema.Result {
	result := schema.Result{}
	for _, line := range lines {
		if IsSkipped(line) {
			continue
		}
		ref, err := ParseLine(line)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Tables = append(result.Tables, ref)
	}
	return result
}
