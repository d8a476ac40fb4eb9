package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/studentdesk/student-record-manager/internal/domain/record"
)

// ══════════════════════════════════════════════════════════════════════════════
// SEARCH STUDENTS QUERY
// Linear scan over all records. Multiple criteria combine with AND.
// Name matching is a case-insensitive substring match; grade matches its
// normalized form exactly; age matches exactly.
// ══════════════════════════════════════════════════════════════════════════════

// SearchStudentsQuery contains the search criteria. At least one must be set.
type SearchStudentsQuery struct {
	// Name matches records whose name contains this value, ignoring case.
	Name string

	// Age matches records with exactly this age. Nil skips the criterion.
	Age *int

	// Grade matches records with this grade, ignoring case.
	Grade record.Grade
}

// Validate validates the query.
func (q SearchStudentsQuery) Validate() error {
	if q.Name == "" && q.Age == nil && q.Grade == "" {
		return errors.New("search_students: at least one criterion must be provided")
	}
	return nil
}

// SearchStudentsResult contains the matching records with their display
// positions. An empty result is not an error.
type SearchStudentsResult struct {
	Entries []ListEntry
	Total   int
}

// SearchStudentsHandler handles the SearchStudentsQuery.
type SearchStudentsHandler struct {
	store *record.Store
}

// NewSearchStudentsHandler creates a new SearchStudentsHandler.
func NewSearchStudentsHandler(store *record.Store) *SearchStudentsHandler {
	return &SearchStudentsHandler{store: store}
}

// Handle executes the query.
func (h *SearchStudentsHandler) Handle(ctx context.Context, q SearchStudentsQuery) (*SearchStudentsResult, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("search_students: validation failed: %w", err)
	}

	nameNeedle := strings.ToLower(strings.TrimSpace(q.Name))
	gradeNeedle := q.Grade.Normalize()

	var entries []ListEntry
	for i, s := range h.store.All() {
		if nameNeedle != "" && !strings.Contains(strings.ToLower(s.Name), nameNeedle) {
			continue
		}
		if q.Age != nil && s.Age != *q.Age {
			continue
		}
		if gradeNeedle != "" && s.Grade.Normalize() != gradeNeedle {
			continue
		}
		entries = append(entries, ListEntry{Position: i + 1, Student: s})
	}

	return &SearchStudentsResult{Entries: entries, Total: len(entries)}, nil
}
