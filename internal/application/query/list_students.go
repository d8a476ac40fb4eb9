// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"

	"github.com/studentdesk/student-record-manager/internal/domain/record"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST STUDENTS QUERY
// Returns every record numbered 1..N in insertion order. The positions are
// the addresses the update and delete commands accept, so the order shown is
// never anything other than insertion order.
// ══════════════════════════════════════════════════════════════════════════════

// ListStudentsQuery has no parameters; the whole collection is small enough
// to list without pagination.
type ListStudentsQuery struct{}

// ListEntry pairs a record with its display position.
type ListEntry struct {
	Position int
	Student  *record.Student
}

// ListStudentsResult contains the numbered records.
type ListStudentsResult struct {
	Entries []ListEntry
	Total   int
}

// ListStudentsHandler handles the ListStudentsQuery.
type ListStudentsHandler struct {
	store *record.Store
}

// NewListStudentsHandler creates a new ListStudentsHandler.
func NewListStudentsHandler(store *record.Store) *ListStudentsHandler {
	return &ListStudentsHandler{store: store}
}

// Handle executes the query.
func (h *ListStudentsHandler) Handle(ctx context.Context, _ ListStudentsQuery) (*ListStudentsResult, error) {
	students := h.store.All()

	entries := make([]ListEntry, len(students))
	for i, s := range students {
		entries[i] = ListEntry{Position: i + 1, Student: s}
	}

	return &ListStudentsResult{Entries: entries, Total: len(entries)}, nil
}
