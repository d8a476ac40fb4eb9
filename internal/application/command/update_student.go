package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/studentdesk/student-record-manager/internal/domain/record"
	"github.com/studentdesk/student-record-manager/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE STUDENT COMMAND
// Partial update: only the provided fields change.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateStudentCommand addresses a record by its display position (1..N)
// and carries the fields to change.
type UpdateStudentCommand struct {
	// Position is the display position as shown by View All (1..N).
	Position int

	// Fields holds the new values; nil pointers keep the current value.
	Fields record.UpdateFields
}

// Validate validates the command.
func (c UpdateStudentCommand) Validate() error {
	if c.Position < 1 {
		return errors.New("update_student: position must be 1 or greater")
	}
	if c.Fields.IsEmpty() {
		return errors.New("update_student: no fields to update")
	}
	return nil
}

// UpdateStudentResult contains the updated record.
type UpdateStudentResult struct {
	Student  *record.Student
	Position int
}

// UpdateStudentHandler handles the UpdateStudentCommand.
type UpdateStudentHandler struct {
	store *record.Store
	repo  record.Repository
	stats StatsInvalidator
}

// NewUpdateStudentHandler creates a new UpdateStudentHandler.
func NewUpdateStudentHandler(store *record.Store, repo record.Repository, stats StatsInvalidator) *UpdateStudentHandler {
	return &UpdateStudentHandler{store: store, repo: repo, stats: stats}
}

// Handle executes the update. A position that does not correspond to an
// existing record fails with shared.ErrNotFound; on persistence failure the
// previous record is restored.
func (h *UpdateStudentHandler) Handle(ctx context.Context, cmd UpdateStudentCommand) (*UpdateStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("update_student: validation failed: %w", err)
	}

	index := cmd.Position - 1
	current, err := h.store.Get(index)
	if err != nil {
		return nil, shared.WrapError("record", "Update", shared.ErrNotFound,
			fmt.Sprintf("no student at position %d", cmd.Position), nil)
	}

	updated := current.Clone()
	updated.Apply(cmd.Fields)

	if err := h.store.Replace(index, updated); err != nil {
		return nil, fmt.Errorf("update_student: %w", err)
	}

	if err := h.repo.Save(ctx, h.store.All()); err != nil {
		_ = h.store.Replace(index, current)
		return nil, fmt.Errorf("update_student: failed to persist: %w", err)
	}

	if h.stats != nil {
		h.stats.Invalidate(ctx)
	}

	return &UpdateStudentResult{Student: updated, Position: cmd.Position}, nil
}
