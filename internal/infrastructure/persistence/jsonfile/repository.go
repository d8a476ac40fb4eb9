// Package jsonfile implements the persistence layer on top of a single
// human-readable JSON data file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/studentdesk/student-record-manager/internal/domain/record"
	"github.com/studentdesk/student-record-manager/internal/domain/shared"
	"github.com/studentdesk/student-record-manager/pkg/logging"
)

// Repository implements record.Repository for a JSON array-of-objects file.
//
// Saves are full-file rewrites: record counts are small (tens to low
// thousands) and there is no concurrent writer. Writes go to a temporary
// file in the same directory and are renamed over the target, so a failed
// save never leaves a truncated data file behind.
type Repository struct {
	path string
}

// NewRepository creates a Repository backed by the file at path.
func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// Path returns the data file path.
func (r *Repository) Path() string {
	return r.path
}

// Load reads the full ordered sequence from the data file.
// A missing file is a first run and yields an empty sequence.
func (r *Repository) Load(ctx context.Context) ([]*record.Student, error) {
	log := logging.Logger(ctx).WithFields(logrus.Fields{
		"component": "jsonfile",
		"path":      r.path,
	})

	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug("data file does not exist, starting with an empty store")
		return []*record.Student{}, nil
	}
	if err != nil {
		return nil, shared.WrapError("persistence", "Load", shared.ErrIO, "failed to read data file", err)
	}

	var students []*record.Student
	if err := json.Unmarshal(data, &students); err != nil {
		return nil, shared.WrapError("persistence", "Load", shared.ErrCorruptData, "data file contains malformed JSON", err)
	}

	// Legacy files written before synthetic IDs existed.
	for _, s := range students {
		s.EnsureID()
	}

	log.WithField("count", len(students)).Debug("loaded student records")
	return students, nil
}

// Save serializes the full sequence as an indented JSON array and atomically
// replaces the data file.
func (r *Repository) Save(ctx context.Context, students []*record.Student) error {
	log := logging.Logger(ctx).WithFields(logrus.Fields{
		"component": "jsonfile",
		"path":      r.path,
	})

	if students == nil {
		students = []*record.Student{}
	}

	data, err := json.MarshalIndent(students, "", "    ")
	if err != nil {
		return shared.WrapError("persistence", "Save", shared.ErrIO, "failed to marshal records", err)
	}

	if err := writeFileAtomic(r.path, data, 0o644); err != nil {
		return shared.WrapError("persistence", "Save", shared.ErrIO, "failed to write data file", err)
	}

	log.WithField("count", len(students)).Debug("saved student records")
	return nil
}

// writeFileAtomic writes data to a temporary file in the target's directory
// and renames it over the target.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(tmpPath)
		if writeErr != nil {
			return fmt.Errorf("write temp file: %w", writeErr)
		}
		return fmt.Errorf("close temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Compile-time interface compliance check
var _ record.Repository = (*Repository)(nil)
