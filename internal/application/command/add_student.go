// Package command contains write operations (CQRS - Commands).
// Commands mutate the in-memory store and persist after every successful
// mutation, so the data file and the store never diverge for long.
package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/studentdesk/student-record-manager/internal/domain/record"
)

// ══════════════════════════════════════════════════════════════════════════════
// SHARED DEPENDENCIES
// ══════════════════════════════════════════════════════════════════════════════

// StatsInvalidator invalidates derived statistics after a mutation.
// Implementations may be nil-safe no-ops in tests.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

// ══════════════════════════════════════════════════════════════════════════════
// ADD STUDENT COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// AddStudentCommand contains the field values for a new student record.
type AddStudentCommand struct {
	Name  string
	Age   int
	Grade record.Grade
	Email string
	Phone string
}

// Validate validates the command.
func (c AddStudentCommand) Validate() error {
	if c.Name == "" {
		return errors.New("add_student: name must not be empty")
	}
	return nil
}

// AddStudentResult contains the result of adding a student.
type AddStudentResult struct {
	// Student is the newly created record.
	Student *record.Student

	// Position is the record's display position (1..N).
	Position int
}

// AddStudentHandler handles the AddStudentCommand.
type AddStudentHandler struct {
	store *record.Store
	repo  record.Repository
	stats StatsInvalidator
}

// NewAddStudentHandler creates a new AddStudentHandler.
func NewAddStudentHandler(store *record.Store, repo record.Repository, stats StatsInvalidator) *AddStudentHandler {
	return &AddStudentHandler{store: store, repo: repo, stats: stats}
}

// Handle executes the add student command. On persistence failure the
// in-memory store is rolled back so memory and disk stay consistent.
func (h *AddStudentHandler) Handle(ctx context.Context, cmd AddStudentCommand) (*AddStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("add_student: validation failed: %w", err)
	}

	student := record.NewStudent(record.NewStudentParams{
		Name:  cmd.Name,
		Age:   cmd.Age,
		Grade: cmd.Grade,
		Email: cmd.Email,
		Phone: cmd.Phone,
	})

	h.store.Append(student)

	if err := h.repo.Save(ctx, h.store.All()); err != nil {
		_ = h.store.RemoveAt(h.store.Len() - 1)
		return nil, fmt.Errorf("add_student: failed to persist: %w", err)
	}

	if h.stats != nil {
		h.stats.Invalidate(ctx)
	}

	return &AddStudentResult{
		Student:  student,
		Position: h.store.Len(),
	}, nil
}
