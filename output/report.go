package output

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kacollins/TablePopulation/schema"
)

const (
	// ErrorFileName is the report written when the table list had problems.
	ErrorFileName = "Error.sql"
	// NoTables is reported when the table list named no tables.
	NoTables = "No tables to compare!"
)

// ReportErrors writes the table list's error messages to Error.sql, one per
// line. With no errors and no tables it writes NoTables instead. When echo is
// set the messages are also logged at error level. Failures to write are
// logged, not returned.
func ReportErrors(ctx context.Context, sink Sink, result schema.Result, echo bool) {
	var message string
	switch {
	case len(result.Errors) > 0:
		message = JoinLines(result.Errors)
	case len(result.Tables) == 0:
		message = NoTables
		echo = true
	default:
		return
	}

	logger := zerolog.Ctx(ctx)
	if echo {
		for _, line := range strings.Split(strings.TrimSuffix(message, "\n"), "\n") {
			logger.Error().Msg(line)
		}
	}

	if _, err := sink.Write(ctx, ErrorFileName, []byte(message)); err != nil {
		logger.Error().Err(err).Msg("Failed to write error report")
	}
}

// JoinLines terminates every line with a newline and concatenates them.
func JoinLines(lines []string) string {
	var builder strings.Builder
	for _, line := range lines {
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	return builder.String()
}
