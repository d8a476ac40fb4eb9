package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/studentdesk/student-record-manager/internal/domain/record"
)

// ══════════════════════════════════════════════════════════════════════════════
// BACKUP / RESTORE COMMANDS
// Backup copies the persisted file verbatim; restore copies a backup over the
// persisted file and reloads the in-memory store from it.
// ══════════════════════════════════════════════════════════════════════════════

// BackupRecordsCommand requests a backup of the current persisted file.
type BackupRecordsCommand struct{}

// BackupRecordsResult names the backup that was created.
type BackupRecordsResult struct {
	BackupName string
}

// BackupRecordsHandler handles the BackupRecordsCommand.
type BackupRecordsHandler struct {
	archive record.BackupArchive
}

// NewBackupRecordsHandler creates a new BackupRecordsHandler.
func NewBackupRecordsHandler(archive record.BackupArchive) *BackupRecordsHandler {
	return &BackupRecordsHandler{archive: archive}
}

// Handle creates the backup.
func (h *BackupRecordsHandler) Handle(ctx context.Context, _ BackupRecordsCommand) (*BackupRecordsResult, error) {
	name, err := h.archive.Backup(ctx)
	if err != nil {
		return nil, fmt.Errorf("backup_records: %w", err)
	}
	return &BackupRecordsResult{BackupName: name}, nil
}

// RestoreRecordsCommand requests restoring the named backup.
type RestoreRecordsCommand struct {
	// BackupName is one of the names returned by ListBackups.
	BackupName string
}

// Validate validates the command.
func (c RestoreRecordsCommand) Validate() error {
	if c.BackupName == "" {
		return errors.New("restore_records: backup name must not be empty")
	}
	return nil
}

// RestoreRecordsResult reports the state after restoring.
type RestoreRecordsResult struct {
	// RecordCount is the number of records in the restored store.
	RecordCount int
}

// RestoreRecordsHandler handles the RestoreRecordsCommand.
type RestoreRecordsHandler struct {
	archive record.BackupArchive
	repo    record.Repository
	store   *record.Store
	stats   StatsInvalidator
}

// NewRestoreRecordsHandler creates a new RestoreRecordsHandler.
func NewRestoreRecordsHandler(
	archive record.BackupArchive,
	repo record.Repository,
	store *record.Store,
	stats StatsInvalidator,
) *RestoreRecordsHandler {
	return &RestoreRecordsHandler{archive: archive, repo: repo, store: store, stats: stats}
}

// Handle restores the backup and replaces the in-memory store with a fresh
// load of the restored file. The in-memory store is only touched once the
// restored file has loaded cleanly.
func (h *RestoreRecordsHandler) Handle(ctx context.Context, cmd RestoreRecordsCommand) (*RestoreRecordsResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("restore_records: validation failed: %w", err)
	}

	if err := h.archive.Restore(ctx, cmd.BackupName); err != nil {
		return nil, fmt.Errorf("restore_records: %w", err)
	}

	students, err := h.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore_records: failed to reload: %w", err)
	}

	h.store.ReplaceAll(students)

	if h.stats != nil {
		h.stats.Invalidate(ctx)
	}

	return &RestoreRecordsResult{RecordCount: h.store.Len()}, nil
}
