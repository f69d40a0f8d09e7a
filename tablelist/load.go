package tablelist

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/kacollins/TablePopulation/schema"
)

// DefaultPattern matches the table list file in the input directory.
const DefaultPattern = "TablesToPopulate.*"

// Load reads the first file in dir matching pattern and parses it.
//
// A missing directory or file is not an error: it is logged and an empty
// result is returned so the caller can report that there is nothing to do.
func Load(ctx context.Context, dir, pattern string) schema.Result {
	logger := zerolog.Ctx(ctx)
	if pattern == "" {
		pattern = DefaultPattern
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Warn().Str("dir", absPath(dir)).Msg("Directory does not exist")
		return schema.Result{}
	}

	path, err := findFile(dir, pattern)
	if err != nil {
		logger.Warn().Err(err).Str("file", absPath(filepath.Join(dir, pattern))).Msg("File does not exist")
		return schema.Result{}
	}

	lines, err := ReadLines(path)
	if err != nil {
		logger.Error().Err(err).Str("file", path).Msg("Failed to read table list")
		return schema.Result{}
	}

	result := Parse(lines)
	if len(result.Errors) > 0 {
		logger.Error().Int("count", len(result.Errors)).Str("file", path).
			Msg("Invalid schema/table format in table list file")
	}
	logger.Debug().Int("tables", len(result.Tables)).Str("file", path).Msg("Loaded table list")

	return result
}

// ReadLines returns the lines of a text file. UTF-8 and UTF-16 files with a
// byte order mark are decoded; files without one are read as UTF-8.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	lines, err := readLines(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return lines, nil
}

func readLines(r io.Reader) ([]string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	scanner := bufio.NewScanner(transform.NewReader(r, decoder))

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}

func findFile(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", errors.Wrapf(err, "invalid pattern %q", pattern)
	}
	sort.Strings(matches)
	for _, match := range matches {
		if info, err := os.Stat(match); err == nil && info.Mode().IsRegular() {
			return match, nil
		}
	}
	return "", errors.Errorf("no file matching %q", pattern)
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
