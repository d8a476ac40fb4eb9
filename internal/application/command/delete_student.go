package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/studentdesk/student-record-manager/internal/domain/record"
	"github.com/studentdesk/student-record-manager/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DELETE STUDENT COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// DeleteStudentCommand addresses a record by its display position (1..N).
type DeleteStudentCommand struct {
	Position int
}

// Validate validates the command.
func (c DeleteStudentCommand) Validate() error {
	if c.Position < 1 {
		return errors.New("delete_student: position must be 1 or greater")
	}
	return nil
}

// DeleteStudentResult contains the removed record.
type DeleteStudentResult struct {
	Student *record.Student
}

// DeleteStudentHandler handles the DeleteStudentCommand.
type DeleteStudentHandler struct {
	store *record.Store
	repo  record.Repository
	stats StatsInvalidator
}

// NewDeleteStudentHandler creates a new DeleteStudentHandler.
func NewDeleteStudentHandler(store *record.Store, repo record.Repository, stats StatsInvalidator) *DeleteStudentHandler {
	return &DeleteStudentHandler{store: store, repo: repo, stats: stats}
}

// Handle executes the delete. An out-of-range position leaves the store
// unchanged and fails with shared.ErrNotFound; on persistence failure the
// removed record is reinserted at its old position.
func (h *DeleteStudentHandler) Handle(ctx context.Context, cmd DeleteStudentCommand) (*DeleteStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("delete_student: validation failed: %w", err)
	}

	index := cmd.Position - 1
	removed, err := h.store.Get(index)
	if err != nil {
		return nil, shared.WrapError("record", "Delete", shared.ErrNotFound,
			fmt.Sprintf("no student at position %d", cmd.Position), nil)
	}

	if err := h.store.RemoveAt(index); err != nil {
		return nil, fmt.Errorf("delete_student: %w", err)
	}

	if err := h.repo.Save(ctx, h.store.All()); err != nil {
		h.reinsert(index, removed)
		return nil, fmt.Errorf("delete_student: failed to persist: %w", err)
	}

	if h.stats != nil {
		h.stats.Invalidate(ctx)
	}

	return &DeleteStudentResult{Student: removed}, nil
}

// reinsert puts a removed record back at its original index.
func (h *DeleteStudentHandler) reinsert(index int, student *record.Student) {
	students := h.store.All()
	restored := make([]*record.Student, 0, len(students)+1)
	restored = append(restored, students[:index]...)
	restored = append(restored, student)
	restored = append(restored, students[index:]...)
	h.store.ReplaceAll(restored)
}
