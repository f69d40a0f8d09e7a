// Package output writes generated scripts and the run's error report.
package output

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Sink stores one named script and returns where it ended up.
type Sink interface {
	Write(ctx context.Context, name string, contents []byte) (string, error)
}

// Dir writes scripts into a local directory, replacing existing files.
type Dir struct {
	Path string
}

// Write creates the directory if needed, removes any file of the same name
// and writes contents to it.
func (d Dir) Write(ctx context.Context, name string, contents []byte) (string, error) {
	if err := os.MkdirAll(d.Path, 0755); err != nil {
		return "", errors.Wrapf(err, "failed to create directory %s", d.Path)
	}

	path := filepath.Join(d.Path, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", errors.Wrapf(err, "failed to remove %s", path)
	}

	if err := os.WriteFile(path, contents, 0644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", path)
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	zerolog.Ctx(ctx).Info().Str("path", path).Msg("Wrote file")

	return path, nil
}

// Tee writes to every sink in order and returns the first sink's location.
// It stops at the first failure.
type Tee []Sink

func (t Tee) Write(ctx context.Context, name string, contents []byte) (string, error) {
	var location string
	for i, sink := range t {
		loc, err := sink.Write(ctx, name, contents)
		if err != nil {
			return "", err
		}
		if i == 0 {
			location = loc
		}
	}
	return location, nil
}
