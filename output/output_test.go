package output

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kacollins/TablePopulation/schema"
)

type memorySink struct {
	files map[string]string
	err   error
}

func newMemorySink() *memorySink {
	return &memorySink{files: make(map[string]string)}
}

func (m *memorySink) Write(ctx context.Context, name string, contents []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.files[name] = string(contents)
	return "mem://" + name, nil
}

func TestDirWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Outputs")

	path, err := Dir{Path: dir}.Write(context.Background(), "dbo_Colors.sql", []byte("--No records to insert"))
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, "dbo_Colors.sql", filepath.Base(path))
	contents, err := os.ReadFile(filepath.Join(dir, "dbo_Colors.sql"))
	require.NoError(t, err)
	assert.Equal(t, "--No records to insert", string(contents))
}

func TestDirWriteReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dbo_Colors.sql"), []byte("a much longer previous script"), 0644))

	_, err := Dir{Path: dir}.Write(context.Background(), "dbo_Colors.sql", []byte("new"))
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(dir, "dbo_Colors.sql"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(contents))
}

func TestDirWriteFailure(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "Outputs")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0644))

	_, err := Dir{Path: blocker}.Write(context.Background(), "dbo_Colors.sql", []byte("x"))
	assert.Error(t, err)
}

func TestTee(t *testing.T) {
	first := newMemorySink()
	second := newMemorySink()

	location, err := Tee{first, second}.Write(context.Background(), "a.sql", []byte("x"))
	require.NoError(t, err)

	assert.Equal(t, "mem://a.sql", location)
	assert.Equal(t, "x", first.files["a.sql"])
	assert.Equal(t, "x", second.files["a.sql"])
}

func TestTeeStopsOnError(t *testing.T) {
	failing := newMemorySink()
	failing.err = errors.New("disk full")
	after := newMemorySink()

	_, err := Tee{failing, after}.Write(context.Background(), "a.sql", []byte("x"))
	assert.EqualError(t, err, "disk full")
	assert.Empty(t, after.files)
}

func TestReportErrors(t *testing.T) {
	sink := newMemorySink()
	result := schema.Result{
		Tables: []schema.TableRef{{SchemaName: "dbo", TableName: "Colors"}},
		Errors: []string{
			"Invalid schema/table format: bad.line.extra",
			"Invalid schema/table format: Colors",
		},
	}

	ReportErrors(context.Background(), sink, result, false)

	assert.Equal(t, "Invalid schema/table format: bad.line.extra\nInvalid schema/table format: Colors\n", sink.files[ErrorFileName])
}

func TestReportErrorsNoTables(t *testing.T) {
	sink := newMemorySink()

	ReportErrors(context.Background(), sink, schema.Result{}, false)

	assert.Equal(t, "No tables to compare!", sink.files[ErrorFileName])
}

func TestReportErrorsNothingToReport(t *testing.T) {
	sink := newMemorySink()
	result := schema.Result{Tables: []schema.TableRef{{SchemaName: "dbo", TableName: "Colors"}}}

	ReportErrors(context.Background(), sink, result, true)

	assert.Empty(t, sink.files)
}

func TestReportErrorsWriteFailure(t *testing.T) {
	sink := newMemorySink()
	sink.err = errors.New("read-only file system")

	assert.NotPanics(t, func() {
		ReportErrors(context.Background(), sink, schema.Result{Errors: []string{"Invalid schema/table format: x"}}, true)
	})
}

func TestJoinLines(t *testing.T) {
	assert.Equal(t, "", JoinLines(nil))
	assert.Equal(t, "a\nb\n", JoinLines([]string{"a", "b"}))
}
