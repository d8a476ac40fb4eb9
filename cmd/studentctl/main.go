// Package main is the entry point for the studentctl CLI.
//
// The application follows Clean Architecture and DDD:
// - Domain: the record model and its ports, no external dependencies
// - Application: use case orchestration (Commands/Queries)
// - Infrastructure: JSON file persistence, backup archive, stats cache
// - Interface: the interactive menu shell
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/studentdesk/student-record-manager/config"

	// Application layer
	"github.com/studentdesk/student-record-manager/internal/application/command"
	"github.com/studentdesk/student-record-manager/internal/application/query"

	// Domain layer
	"github.com/studentdesk/student-record-manager/internal/domain/record"
	"github.com/studentdesk/student-record-manager/internal/domain/shared"

	// Infrastructure layer
	"github.com/studentdesk/student-record-manager/internal/infrastructure/persistence/jsonfile"
	"github.com/studentdesk/student-record-manager/internal/infrastructure/persistence/memcache"

	// Interface layer
	"github.com/studentdesk/student-record-manager/internal/interface/cli"

	// Packages
	"github.com/studentdesk/student-record-manager/pkg/logging"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := logging.Init(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	ctx = logging.WithContext(ctx, logrus.NewEntry(log))

	logging.Logger(ctx).WithFields(logrus.Fields{
		"app":       cfg.App.Name,
		"version":   cfg.App.Version,
		"data_file": cfg.Storage.DataFile,
	}).Info("starting")

	// ─────────────────────────────────────────────────────────────────────────
	// 3. PERSISTENCE
	// ─────────────────────────────────────────────────────────────────────────
	repo := jsonfile.NewRepository(cfg.Storage.DataFile)
	archive := jsonfile.NewBackupArchive(cfg.Storage.DataFile, cfg.Storage.BackupDir)

	store := record.NewStore()
	students, err := repo.Load(ctx)
	if err != nil {
		if shared.IsCorruptData(err) {
			fmt.Fprintf(os.Stderr, "The data file %s is corrupt.\n", cfg.Storage.DataFile)
			fmt.Fprintln(os.Stderr, "Fix or remove it, or restore a backup copy manually, then start again.")
		}
		return fmt.Errorf("failed to load records: %w", err)
	}
	store.ReplaceAll(students)

	logging.Logger(ctx).WithField("records", store.Len()).Info("records loaded")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. STATS CACHE
	// ─────────────────────────────────────────────────────────────────────────
	statsCache, err := memcache.NewCache(memcache.Config{
		DefaultExpiration: cfg.Stats.CacheTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to create stats cache: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. APPLICATION LAYER (Commands, Queries)
	// ─────────────────────────────────────────────────────────────────────────
	statisticsQuery := query.NewGetStatisticsHandler(store, statsCache)

	addStudentCmd := command.NewAddStudentHandler(store, repo, statisticsQuery)
	updateStudentCmd := command.NewUpdateStudentHandler(store, repo, statisticsQuery)
	deleteStudentCmd := command.NewDeleteStudentHandler(store, repo, statisticsQuery)
	backupRecordsCmd := command.NewBackupRecordsHandler(archive)
	restoreRecordsCmd := command.NewRestoreRecordsHandler(archive, repo, store, statisticsQuery)

	listStudentsQuery := query.NewListStudentsHandler(store)
	searchStudentsQuery := query.NewSearchStudentsHandler(store)

	// ─────────────────────────────────────────────────────────────────────────
	// 6. INTERACTIVE SHELL
	// ─────────────────────────────────────────────────────────────────────────
	shell := cli.NewShell(cli.Dependencies{
		AddStudentCmd:     addStudentCmd,
		UpdateStudentCmd:  updateStudentCmd,
		DeleteStudentCmd:  deleteStudentCmd,
		BackupRecordsCmd:  backupRecordsCmd,
		RestoreRecordsCmd: restoreRecordsCmd,

		ListStudentsQuery:   listStudentsQuery,
		SearchStudentsQuery: searchStudentsQuery,
		GetStatisticsQuery:  statisticsQuery,

		Archive: archive,
		Repo:    repo,
		Store:   store,
	}, os.Stdin, os.Stdout)

	if err := shell.Run(ctx); err != nil {
		return fmt.Errorf("shell: %w", err)
	}

	logging.Logger(ctx).Info("shutdown complete")
	return nil
}
