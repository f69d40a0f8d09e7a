// Package tablepopulation generates idempotent INSERT scripts that
// re-populate tables with their current contents.
//
// A table list file names the tables, one Schema.Table per line. For every
// table the package reads all rows and the column catalog, then writes
// <Schema>_<Table>.sql containing one IF NOT EXISTS ... INSERT block per row,
// keyed on the first column. Rejected table list lines are collected into
// Error.sql.
//
// # Basic Usage
//
// Generate scripts from a connection string:
//
//	import "github.com/kacollins/TablePopulation"
//
//	report, err := tablepopulation.GenerateFromConnectionString(ctx, connStr, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(report.Written), "scripts written")
//
// # Configuration
//
// Use Config to choose the directories and the database engine:
//
//	config := &tablepopulation.Config{
//	    InputDir:      "Inputs",
//	    OutputDir:     "Outputs",
//	    ExcludeTables: []string{"dbo.Migrations"},
//	    Dialect:       introspect.PostgreSQL,
//	}
//	report, err := tablepopulation.GenerateFromConnectionString(ctx, connStr, config)
//
// Logging goes through the zerolog logger carried by ctx (see zerolog.Ctx);
// without one, nothing is logged.
//
// # Subpackages
//
//   - github.com/kacollins/TablePopulation/schema - table references, column metadata and rows
//   - github.com/kacollins/TablePopulation/tablelist - table list parsing
//   - github.com/kacollins/TablePopulation/introspect - row and catalog fetching per database engine
//   - github.com/kacollins/TablePopulation/generator - INSERT script rendering
//   - github.com/kacollins/TablePopulation/output - script sinks and the error report
package tablepopulation
