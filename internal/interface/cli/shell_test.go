package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentdesk/student-record-manager/internal/application/command"
	"github.com/studentdesk/student-record-manager/internal/application/query"
	"github.com/studentdesk/student-record-manager/internal/domain/record"
	"github.com/studentdesk/student-record-manager/internal/infrastructure/persistence/jsonfile"
	"github.com/studentdesk/student-record-manager/internal/infrastructure/persistence/memcache"
)

type shellFixture struct {
	shell *Shell
	store *record.Store
	repo  *jsonfile.Repository
	out   *bytes.Buffer
}

// newShellFixture wires the full application stack against a temp directory
// and a scripted input stream.
func newShellFixture(t *testing.T, script string) *shellFixture {
	t.Helper()

	dir := t.TempDir()
	dataPath := filepath.Join(dir, "student_records.json")

	repo := jsonfile.NewRepository(dataPath)
	archive := jsonfile.NewBackupArchive(dataPath, filepath.Join(dir, "backups"))
	store := record.NewStore()

	cache, err := memcache.NewCache(memcache.Config{DefaultExpiration: time.Minute})
	require.NoError(t, err)

	statisticsQuery := query.NewGetStatisticsHandler(store, cache)

	out := &bytes.Buffer{}
	shell := NewShell(Dependencies{
		AddStudentCmd:     command.NewAddStudentHandler(store, repo, statisticsQuery),
		UpdateStudentCmd:  command.NewUpdateStudentHandler(store, repo, statisticsQuery),
		DeleteStudentCmd:  command.NewDeleteStudentHandler(store, repo, statisticsQuery),
		BackupRecordsCmd:  command.NewBackupRecordsHandler(archive),
		RestoreRecordsCmd: command.NewRestoreRecordsHandler(archive, repo, store, statisticsQuery),

		ListStudentsQuery:   query.NewListStudentsHandler(store),
		SearchStudentsQuery: query.NewSearchStudentsHandler(store),
		GetStatisticsQuery:  statisticsQuery,

		Archive: archive,
		Repo:    repo,
		Store:   store,
	}, strings.NewReader(script), out)

	return &shellFixture{shell: shell, store: store, repo: repo, out: out}
}

func TestShellAddViewStatsDelete(t *testing.T) {
	script := strings.Join([]string{
		"1",                 // Add New Student
		"Alice Johnson",     // name
		"20",                // age
		"a",                 // grade, lower case on purpose
		"alice@example.com", // email
		"",                  // phone
		"2",                 // View All Students
		"6",                 // View Statistics
		"5",                 // Delete Student
		"1",                 // position
		"yes",               // confirm
		"9",                 // Exit
	}, "\n") + "\n"

	f := newShellFixture(t, script)
	require.NoError(t, f.shell.Run(context.Background()))

	output := f.out.String()
	assert.Contains(t, output, "Student added successfully at position 1")
	assert.Contains(t, output, "ALL STUDENTS (1 records)")
	assert.Contains(t, output, "[1] Alice Johnson")
	assert.Contains(t, output, "Grade:   A")
	assert.Contains(t, output, "Total students: 1")
	assert.Contains(t, output, "Average age:    20.00")
	assert.Contains(t, output, "Student Alice Johnson deleted successfully!")

	assert.Equal(t, 0, f.store.Len())
	data, err := os.ReadFile(f.repo.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestShellUpdateKeepsBlankFields(t *testing.T) {
	script := strings.Join([]string{
		"1", "Bob Smith", "22", "B", "bob@example.com", "555-0102",
		"4",  // Update Student
		"1",  // position
		"",   // name unchanged
		"25", // new age
		"",   // grade unchanged
		"",   // email unchanged
		"",   // phone unchanged
		"9",
	}, "\n") + "\n"

	f := newShellFixture(t, script)
	require.NoError(t, f.shell.Run(context.Background()))

	assert.Contains(t, f.out.String(), "Student at position 1 updated successfully!")

	updated, err := f.store.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "Bob Smith", updated.Name)
	assert.Equal(t, 25, updated.Age)
	assert.Equal(t, record.GradeB, updated.Grade)
	assert.Equal(t, "bob@example.com", updated.Email)
}

func TestShellSearch(t *testing.T) {
	script := strings.Join([]string{
		"1", "Alice Johnson", "20", "A", "", "",
		"1", "Bob Smith", "22", "B", "", "",
		"3",     // Search Students
		"alice", // name criterion
		"",      // age skipped
		"",      // grade skipped
		"9",
	}, "\n") + "\n"

	f := newShellFixture(t, script)
	require.NoError(t, f.shell.Run(context.Background()))

	output := f.out.String()
	assert.Contains(t, output, "Found 1 matching student(s):")
	assert.Contains(t, output, "[1] Alice Johnson")
	assert.NotContains(t, output, "Bob Smith\n    Age")
}

func TestShellBackupAndRestore(t *testing.T) {
	script := strings.Join([]string{
		"1", "Alice Johnson", "20", "A", "", "",
		"7", // Backup Records
		"5", "1", "yes", // delete the only record
		"8", "1", // Restore from Backup, pick the newest
		"9",
	}, "\n") + "\n"

	f := newShellFixture(t, script)
	require.NoError(t, f.shell.Run(context.Background()))

	output := f.out.String()
	assert.Contains(t, output, "Backup created successfully: student_records_backup_")
	assert.Contains(t, output, "(1 records)")

	assert.Equal(t, 1, f.store.Len())
	restored, err := f.store.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", restored.Name)
}

func TestShellRejectsInvalidMenuChoice(t *testing.T) {
	script := "42\n9\n"

	f := newShellFixture(t, script)
	require.NoError(t, f.shell.Run(context.Background()))

	assert.Contains(t, f.out.String(), "Invalid choice. Please enter a number between 1-9.")
}

func TestShellDeleteUnknownPosition(t *testing.T) {
	script := "5\n3\n9\n"

	f := newShellFixture(t, script)
	require.NoError(t, f.shell.Run(context.Background()))

	assert.Contains(t, f.out.String(), "No student at position 3.")
}

func TestShellReportsValidationRetries(t *testing.T) {
	script := strings.Join([]string{
		"1",
		"",      // empty name, re-prompted
		"Carol", // accepted
		"200",   // out of range age, re-prompted
		"19",    // accepted
		"Z",     // unknown grade, re-prompted
		"c",     // accepted
		"", "",
		"9",
	}, "\n") + "\n"

	f := newShellFixture(t, script)
	require.NoError(t, f.shell.Run(context.Background()))

	output := f.out.String()
	assert.Contains(t, output, "Value cannot be empty.")
	assert.Contains(t, output, "Age must be a number between 5 and 100.")
	assert.Contains(t, output, "Grade must be one of: A, B, C, D, F.")
	assert.Contains(t, output, "Student added successfully at position 1")

	added, err := f.store.Get(0)
	require.NoError(t, err)
	assert.Equal(t, "Carol", added.Name)
	assert.Equal(t, 19, added.Age)
	assert.Equal(t, record.GradeC, added.Grade)
}
