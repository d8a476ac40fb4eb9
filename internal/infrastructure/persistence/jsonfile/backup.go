package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/studentdesk/student-record-manager/internal/domain/record"
	"github.com/studentdesk/student-record-manager/internal/domain/shared"
	"github.com/studentdesk/student-record-manager/pkg/logging"
	"github.com/studentdesk/student-record-manager/pkg/timeutil"
)

const (
	backupPrefix = "student_records_backup_"
	backupSuffix = ".json"
)

// BackupArchive implements record.BackupArchive with timestamped byte-for-byte
// copies of the data file in a dedicated directory.
type BackupArchive struct {
	dataPath  string
	backupDir string
}

// NewBackupArchive creates a BackupArchive for the given data file.
func NewBackupArchive(dataPath, backupDir string) *BackupArchive {
	return &BackupArchive{dataPath: dataPath, backupDir: backupDir}
}

// Backup copies the current data file verbatim into the archive and returns
// the new backup's name.
func (a *BackupArchive) Backup(ctx context.Context) (string, error) {
	log := logging.Logger(ctx).WithFields(logrus.Fields{
		"component": "backup",
		"dir":       a.backupDir,
	})

	if _, err := os.Stat(a.dataPath); err != nil {
		return "", shared.WrapError("persistence", "Backup", shared.ErrIO, "nothing to back up", err)
	}

	if err := os.MkdirAll(a.backupDir, 0o755); err != nil {
		return "", shared.WrapError("persistence", "Backup", shared.ErrIO, "failed to create backup directory", err)
	}

	name := backupPrefix + timeutil.Stamp(timeutil.Now()) + backupSuffix
	if err := copyFile(a.dataPath, filepath.Join(a.backupDir, name)); err != nil {
		return "", shared.WrapError("persistence", "Backup", shared.ErrIO, "failed to copy data file", err)
	}

	log.WithField("backup", name).Info("backup created")
	return name, nil
}

// ListBackups returns the names of available backups, newest first by their
// embedded timestamp. Names whose stamp does not parse sort last.
func (a *BackupArchive) ListBackups(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(a.backupDir)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, shared.WrapError("persistence", "ListBackups", shared.ErrIO, "failed to read backup directory", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, backupSuffix) {
			names = append(names, name)
		}
	}

	sort.Slice(names, func(i, j int) bool {
		ti, tj := backupTime(names[i]), backupTime(names[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return names[i] > names[j]
	})
	return names, nil
}

// backupTime extracts the timestamp embedded in a backup name.
func backupTime(name string) time.Time {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, backupPrefix), backupSuffix)
	t, err := timeutil.ParseStamp(stamp)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Restore copies the named backup over the data file. The backup's content is
// parsed first, so a corrupt backup fails without touching the data file.
// The caller is expected to reload the in-memory store afterwards.
func (a *BackupArchive) Restore(ctx context.Context, name string) error {
	log := logging.Logger(ctx).WithFields(logrus.Fields{
		"component": "backup",
		"backup":    name,
	})

	// Reject path traversal; backups are addressed by bare name.
	if name != filepath.Base(name) || name == "" {
		return shared.WrapError("persistence", "Restore", shared.ErrInvalidInput, "invalid backup name", nil)
	}

	src := filepath.Join(a.backupDir, name)
	data, err := os.ReadFile(src)
	if errors.Is(err, os.ErrNotExist) {
		return shared.WrapError("persistence", "Restore", shared.ErrIO, "backup file does not exist", err)
	}
	if err != nil {
		return shared.WrapError("persistence", "Restore", shared.ErrIO, "failed to read backup", err)
	}

	var students []*record.Student
	if err := json.Unmarshal(data, &students); err != nil {
		return shared.WrapError("persistence", "Restore", shared.ErrCorruptData, "backup file contains malformed JSON", err)
	}

	if err := writeFileAtomic(a.dataPath, data, 0o644); err != nil {
		return shared.WrapError("persistence", "Restore", shared.ErrIO, "failed to restore backup", err)
	}

	log.Info("backup restored")
	return nil
}

// copyFile copies src to dst through a temporary file so dst is replaced
// atomically.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	return writeFileAtomic(dst, data, 0o644)
}

// Compile-time interface compliance check
var _ record.BackupArchive = (*BackupArchive)(nil)
