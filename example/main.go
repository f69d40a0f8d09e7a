package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	tablepopulation "github.com/kacollins/TablePopulation"
	"github.com/kacollins/TablePopulation/introspect"
)

// Builds a throwaway SQLite database, scripts it and prints the result.
// Usage: go run ./example [work_dir]
func main() {
	workDir := filepath.Join(os.TempDir(), "tablepopulation-example")
	if len(os.Args) > 1 {
		workDir = os.Args[1]
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	statements := []string{
		"ATTACH DATABASE ':memory:' AS dbo",
		"CREATE TABLE dbo.Colors (Id INTEGER PRIMARY KEY, Name TEXT NOT NULL, IsPrimary BOOLEAN)",
		"INSERT INTO dbo.Colors VALUES (3, 'Green', 1), (1, 'Red', 1), (2, 'O''Brien Blue', 0)",
		"CREATE TABLE dbo.Shades (Code TEXT PRIMARY KEY, ColorId INT, Notes TEXT)",
		"INSERT INTO dbo.Shades VALUES ('NAVY', 2, NULL)",
		"CREATE TABLE dbo.Archive (Id INT PRIMARY KEY)",
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Fatal().Err(err).Str("statement", stmt).Msg("Failed to seed database")
		}
	}

	inputDir := filepath.Join(workDir, "Inputs")
	if err := os.MkdirAll(inputDir, 0755); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create input directory")
	}
	tableList := "-- tables to script\ndbo.Colors\ndbo.Shades\ndbo.Archive\nnot a table\n"
	if err := os.WriteFile(filepath.Join(inputDir, "TablesToPopulate.txt"), []byte(tableList), 0644); err != nil {
		logger.Fatal().Err(err).Msg("Failed to write table list")
	}

	report, err := tablepopulation.Generate(ctx, db, &tablepopulation.Config{
		InputDir:  inputDir,
		OutputDir: filepath.Join(workDir, "Outputs"),
		Dialect:   introspect.SQLite,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to generate scripts")
	}

	for _, path := range report.Written {
		contents, err := os.ReadFile(path)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to read script")
		}
		fmt.Printf("==> %s\n%s\n", path, contents)
	}

	if len(report.Errors) > 0 {
		fmt.Printf("%d table list line(s) rejected, see Error.sql\n", len(report.Errors))
	}
}
