// Package cli implements the interactive menu shell. It is a thin layer:
// it reads menu choices and field values, calls the application handlers,
// and prints results. All business rules live below it.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/studentdesk/student-record-manager/internal/application/command"
	"github.com/studentdesk/student-record-manager/internal/application/query"
	"github.com/studentdesk/student-record-manager/internal/domain/record"
	"github.com/studentdesk/student-record-manager/pkg/logging"
)

// Dependencies holds the application handlers the shell drives.
type Dependencies struct {
	AddStudentCmd     *command.AddStudentHandler
	UpdateStudentCmd  *command.UpdateStudentHandler
	DeleteStudentCmd  *command.DeleteStudentHandler
	BackupRecordsCmd  *command.BackupRecordsHandler
	RestoreRecordsCmd *command.RestoreRecordsHandler

	ListStudentsQuery   *query.ListStudentsHandler
	SearchStudentsQuery *query.SearchStudentsHandler
	GetStatisticsQuery  *query.GetStatisticsHandler

	// Archive lists backups for the restore dialog.
	Archive record.BackupArchive

	// Repo performs the final save on exit.
	Repo record.Repository

	// Store is read for the final save.
	Store *record.Store
}

// Shell is the interactive menu loop.
type Shell struct {
	deps Dependencies
	in   *bufio.Reader
	out  io.Writer
}

// NewShell creates a Shell reading from in and writing to out.
func NewShell(deps Dependencies, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		deps: deps,
		in:   bufio.NewReader(in),
		out:  out,
	}
}

// Run executes the menu loop until the user exits or input ends.
// Handler errors are reported and the loop returns to the menu; nothing
// below a startup failure is fatal.
func (s *Shell) Run(ctx context.Context) error {
	log := logging.Logger(ctx).WithField("component", "cli")

	for {
		s.printMenu()

		choice, err := s.readLine("Enter your choice (1-9): ")
		if err != nil {
			if err == io.EOF {
				return s.finalSave(ctx)
			}
			return err
		}

		switch choice {
		case "1":
			err = s.addStudent(ctx)
		case "2":
			err = s.viewAllStudents(ctx)
		case "3":
			err = s.searchStudents(ctx)
		case "4":
			err = s.updateStudent(ctx)
		case "5":
			err = s.deleteStudent(ctx)
		case "6":
			err = s.viewStatistics(ctx)
		case "7":
			err = s.backupRecords(ctx)
		case "8":
			err = s.restoreRecords(ctx)
		case "9":
			fmt.Fprintln(s.out, "\nThank you for using Student Record Manager. Goodbye!")
			return s.finalSave(ctx)
		default:
			fmt.Fprintln(s.out, "\nInvalid choice. Please enter a number between 1-9.")
			continue
		}

		if err != nil {
			if err == io.EOF {
				return s.finalSave(ctx)
			}
			log.WithError(err).Debug("menu action failed")
			fmt.Fprintf(s.out, "\nError: %s\n", userMessage(err))
		}
	}
}

// finalSave persists the store one last time before exiting. Mutations save
// eagerly, so this only matters if an earlier save failed.
func (s *Shell) finalSave(ctx context.Context) error {
	if err := s.deps.Repo.Save(ctx, s.deps.Store.All()); err != nil {
		return fmt.Errorf("final save: %w", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Menu actions
// ─────────────────────────────────────────────────────────────────────────────

func (s *Shell) addStudent(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- ADD NEW STUDENT ---")

	name, err := s.promptNonEmpty("Enter student name: ")
	if err != nil {
		return err
	}
	age, err := s.promptAge("Enter student age (5-100): ")
	if err != nil {
		return err
	}
	grade, err := s.promptGrade("Enter grade (A, B, C, D, F): ")
	if err != nil {
		return err
	}
	email, err := s.readLine("Enter email (optional): ")
	if err != nil {
		return err
	}
	phone, err := s.readLine("Enter phone number (optional): ")
	if err != nil {
		return err
	}

	result, err := s.deps.AddStudentCmd.Handle(ctx, command.AddStudentCommand{
		Name:  name,
		Age:   age,
		Grade: grade,
		Email: email,
		Phone: phone,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\nStudent added successfully at position %d (ID: %s)\n",
		result.Position, result.Student.ID)
	return nil
}

func (s *Shell) viewAllStudents(ctx context.Context) error {
	result, err := s.deps.ListStudentsQuery.Handle(ctx, query.ListStudentsQuery{})
	if err != nil {
		return err
	}

	if result.Total == 0 {
		fmt.Fprintln(s.out, "\nNo student records found.")
		return nil
	}

	fmt.Fprintf(s.out, "\n--- ALL STUDENTS (%d records) ---\n", result.Total)
	for _, entry := range result.Entries {
		s.printStudent(entry.Position, entry.Student)
	}
	return nil
}

func (s *Shell) searchStudents(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- SEARCH STUDENTS ---")
	fmt.Fprintln(s.out, "Enter search criteria (leave blank to skip):")

	q := query.SearchStudentsQuery{}

	name, err := s.readLine("Name: ")
	if err != nil {
		return err
	}
	q.Name = name

	ageStr, err := s.readLine("Age: ")
	if err != nil {
		return err
	}
	if age, ok := parseInt(ageStr); ok {
		q.Age = &age
	}

	grade, err := s.readLine("Grade (A, B, C, D, F): ")
	if err != nil {
		return err
	}
	q.Grade = record.Grade(grade)

	result, err := s.deps.SearchStudentsQuery.Handle(ctx, q)
	if err != nil {
		return err
	}

	if result.Total == 0 {
		fmt.Fprintln(s.out, "\nNo students found matching the criteria.")
		return nil
	}

	fmt.Fprintf(s.out, "\nFound %d matching student(s):\n", result.Total)
	for _, entry := range result.Entries {
		s.printStudent(entry.Position, entry.Student)
	}
	return nil
}

func (s *Shell) updateStudent(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- UPDATE STUDENT ---")

	position, err := s.promptPosition("Enter student position to update: ")
	if err != nil {
		return err
	}

	current, err := s.deps.Store.Get(position - 1)
	if err != nil {
		fmt.Fprintf(s.out, "\nNo student at position %d.\n", position)
		return nil
	}

	fmt.Fprintln(s.out, "\nCurrent student details:")
	s.printStudent(position, current)

	fmt.Fprintln(s.out, "\nEnter new values (leave blank to keep current):")
	fields, err := s.promptUpdateFields(current)
	if err != nil {
		return err
	}

	if fields.IsEmpty() {
		fmt.Fprintln(s.out, "\nNothing to update.")
		return nil
	}

	result, err := s.deps.UpdateStudentCmd.Handle(ctx, command.UpdateStudentCommand{
		Position: position,
		Fields:   fields,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\nStudent at position %d updated successfully!\n", result.Position)
	return nil
}

func (s *Shell) deleteStudent(ctx context.Context) error {
	fmt.Fprintln(s.out, "\n--- DELETE STUDENT ---")

	position, err := s.promptPosition("Enter student position to delete: ")
	if err != nil {
		return err
	}

	student, err := s.deps.Store.Get(position - 1)
	if err != nil {
		fmt.Fprintf(s.out, "\nNo student at position %d.\n", position)
		return nil
	}

	fmt.Fprintln(s.out, "\nStudent to delete:")
	s.printStudent(position, student)

	confirm, err := s.readLine(fmt.Sprintf("\nAre you sure you want to delete %s? (yes/no): ", student.Name))
	if err != nil {
		return err
	}
	if !isYes(confirm) {
		fmt.Fprintln(s.out, "\nDeletion cancelled.")
		return nil
	}

	result, err := s.deps.DeleteStudentCmd.Handle(ctx, command.DeleteStudentCommand{Position: position})
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\nStudent %s deleted successfully!\n", result.Student.Name)
	return nil
}

func (s *Shell) viewStatistics(ctx context.Context) error {
	stats, err := s.deps.GetStatisticsQuery.Handle(ctx, query.GetStatisticsQuery{})
	if err != nil {
		return err
	}

	s.printStatistics(stats)
	return nil
}

func (s *Shell) backupRecords(ctx context.Context) error {
	result, err := s.deps.BackupRecordsCmd.Handle(ctx, command.BackupRecordsCommand{})
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\nBackup created successfully: %s\n", result.BackupName)
	return nil
}

func (s *Shell) restoreRecords(ctx context.Context) error {
	backups, err := s.deps.Archive.ListBackups(ctx)
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		fmt.Fprintln(s.out, "\nNo backup files found.")
		return nil
	}

	fmt.Fprintln(s.out, "\nAvailable backup files:")
	for i, name := range backups {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, name)
	}

	choice, err := s.promptPosition("\nSelect backup to restore (number): ")
	if err != nil {
		return err
	}
	if choice < 1 || choice > len(backups) {
		fmt.Fprintln(s.out, "\nInvalid selection.")
		return nil
	}

	result, err := s.deps.RestoreRecordsCmd.Handle(ctx, command.RestoreRecordsCommand{
		BackupName: backups[choice-1],
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\nRecords restored from %s (%d records)\n", backups[choice-1], result.RecordCount)
	return nil
}
