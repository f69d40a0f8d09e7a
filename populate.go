package tablepopulation

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/kacollins/TablePopulation/generator"
	"github.com/kacollins/TablePopulation/introspect"
	"github.com/kacollins/TablePopulation/output"
	"github.com/kacollins/TablePopulation/schema"
	"github.com/kacollins/TablePopulation/tablelist"
)

const (
	// DefaultInputDir holds the table list file.
	DefaultInputDir = "Inputs"
	// DefaultOutputDir receives the generated scripts.
	DefaultOutputDir = "Outputs"
)

// Config controls where the table list is read from and where scripts go.
type Config struct {
	InputDir      string
	TablesFile    string
	OutputDir     string
	ExcludeTables []string
	Dialect       introspect.Dialect
	// Sink overrides the default output.Dir{Path: OutputDir}.
	Sink output.Sink
	// EchoErrors logs table list errors in addition to writing Error.sql.
	EchoErrors bool
}

// Report summarizes a run.
type Report struct {
	// Tables are the tables that were scripted, in table list order.
	Tables []schema.TableRef
	// Written holds the location of every script written.
	Written []string
	// Failed lists tables skipped because their script could not be rendered.
	// Tables that could not be queried are scripted as empty and listed in
	// Written.
	Failed []string
	// Errors are the table list's rejected lines.
	Errors []string
}

func (c *Config) withDefaults() *Config {
	cfg := Config{}
	if c != nil {
		cfg = *c
	}
	if cfg.InputDir == "" {
		cfg.InputDir = DefaultInputDir
	}
	if cfg.TablesFile == "" {
		cfg.TablesFile = tablelist.DefaultPattern
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.Dialect == nil {
		cfg.Dialect = introspect.SQLServer
	}
	if cfg.Sink == nil {
		cfg.Sink = output.Dir{Path: cfg.OutputDir}
	}
	return &cfg
}

// Generate scripts every table named in the table list using db.
//
// Problems with a single table are logged and recorded in the report; the run
// moves on to the next table. Only failing to write a script aborts the run.
func Generate(ctx context.Context, db *sql.DB, config *Config) (*Report, error) {
	cfg := config.withDefaults()
	logger := zerolog.Ctx(ctx)

	result := tablelist.Load(ctx, cfg.InputDir, cfg.TablesFile)
	if len(cfg.ExcludeTables) > 0 {
		result.Tables = schema.FilterTables(result.Tables, cfg.ExcludeTables)
	}

	report := &Report{Errors: result.Errors}
	fetcher := introspect.New(db, introspect.WithDialect(cfg.Dialect))

	for _, ref := range result.Tables {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Tables = append(report.Tables, ref)
		location, err := GenerateTable(ctx, fetcher, cfg.Sink, ref)
		if errors.Is(err, errRender) {
			logger.Error().Err(err).Str("table", ref.String()).Msg("Skipping table")
			report.Failed = append(report.Failed, ref.String())
			continue
		}
		if err != nil {
			return report, err
		}
		report.Written = append(report.Written, location)
	}

	output.ReportErrors(ctx, cfg.Sink, result, cfg.EchoErrors)

	return report, nil
}

// GenerateFromConnectionString connects to the database and runs Generate.
func GenerateFromConnectionString(ctx context.Context, connStr string, config *Config) (*Report, error) {
	cfg := config.withDefaults()

	db, err := introspect.Open(ctx, cfg.Dialect, connStr)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return Generate(ctx, db, cfg)
}

var errRender = errors.New("failed to render script")

// GenerateTable fetches, renders and writes the script for one table.
// A failed fetch is logged and produces the empty-table script.
func GenerateTable(ctx context.Context, fetcher *introspect.Fetcher, sink output.Sink, ref schema.TableRef) (string, error) {
	table, err := fetcher.Table(ctx, ref)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("table", ref.String()).Msg("Query failed")
		table = schema.EmptyTable(ref)
	}

	script, err := generator.Generate(table)
	if err != nil {
		return "", &renderError{err: err}
	}

	return sink.Write(ctx, ref.FileName(), script)
}

type renderError struct {
	err error
}

func (e *renderError) Error() string { return e.err.Error() }

func (e *renderError) Unwrap() error { return e.err }

func (e *renderError) Is(target error) bool { return target == errRender }
