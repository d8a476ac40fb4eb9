package record

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// PERSISTENCE PORTS
// These interfaces define the contract for durable storage.
// Implementations live in infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository translates between the in-memory store and durable storage.
type Repository interface {
	// Load reads the full ordered sequence from storage.
	// A missing data file is not an error: it returns an empty sequence
	// (first run). Malformed content fails with shared.ErrCorruptData.
	Load(ctx context.Context) ([]*Student, error)

	// Save writes the full sequence to storage, replacing previous content.
	// On failure the previously persisted state must remain intact.
	// Fails with shared.ErrIO on filesystem errors.
	Save(ctx context.Context, students []*Student) error
}

// BackupArchive manages secondary copies of the persisted data.
type BackupArchive interface {
	// Backup copies the current persisted file verbatim to the archive and
	// returns the backup's name. Fails with shared.ErrIO if there is nothing
	// to back up or the copy fails.
	Backup(ctx context.Context) (string, error)

	// ListBackups returns the names of available backups, newest first.
	ListBackups(ctx context.Context) ([]string, error)

	// Restore copies the named backup over the persisted file.
	// Fails with shared.ErrIO if the backup is missing.
	Restore(ctx context.Context, name string) error
}
