// Package record contains the domain model for student records.
// This is the core of the business logic - it has no external dependencies
// beyond ID generation.
package record

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// Grade represents a letter grade category. The set is open: unknown letters
// are stored as-is, but statistics always report the canonical categories.
type Grade string

// Canonical grade categories, matching the validation set of the CLI prompts.
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// CanonicalGrades is the fixed category set reported by statistics,
// including categories with zero occurrences.
var CanonicalGrades = []Grade{GradeA, GradeB, GradeC, GradeD, GradeF}

// Normalize upper-cases and trims the grade so "a " and "A" compare equal.
func (g Grade) Normalize() Grade {
	return Grade(strings.ToUpper(strings.TrimSpace(string(g))))
}

// IsCanonical reports whether the grade is one of the fixed categories.
func (g Grade) IsCanonical() bool {
	switch g.Normalize() {
	case GradeA, GradeB, GradeC, GradeD, GradeF:
		return true
	default:
		return false
	}
}

// String returns the string representation of the grade.
func (g Grade) String() string {
	return string(g)
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student is the sole entity of the system: one student's stored field set.
//
// Identity within the collection is primarily positional (insertion order),
// as in the original data files; the synthetic ID exists to keep records
// addressable across reordering and restores.
type Student struct {
	// ID is a stable synthetic identifier (UUID in string form).
	// Legacy data files may omit it; a missing ID is regenerated on load.
	ID string `json:"id,omitempty"`

	// Name is the student's full name. Non-empty by convention (enforced
	// at the CLI boundary, not here).
	Name string `json:"name"`

	// Age in years. Expected positive; the CLI prompts enforce 5-100.
	Age int `json:"age"`

	// Grade is the letter grade category.
	Grade Grade `json:"grade"`

	// Email has no format validation.
	Email string `json:"email"`

	// Phone has no format validation.
	Phone string `json:"phone"`

	// CreatedAt is when the record was added. Zero values are dropped by
	// MarshalJSON so files written without timestamps keep their shape.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the record was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStudentParams contains the field values for creating a new student.
type NewStudentParams struct {
	Name  string
	Age   int
	Grade Grade
	Email string
	Phone string
}

// NewStudent creates a new student record with a generated ID and timestamps.
// Field values are taken as given: validation is a CLI concern.
func NewStudent(params NewStudentParams) *Student {
	now := time.Now().UTC()

	return &Student{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(params.Name),
		Age:       params.Age,
		Grade:     params.Grade.Normalize(),
		Email:     strings.TrimSpace(params.Email),
		Phone:     strings.TrimSpace(params.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN METHODS
// ══════════════════════════════════════════════════════════════════════════════

// UpdateFields is a partial update: nil pointers leave the field unchanged.
type UpdateFields struct {
	Name  *string
	Age   *int
	Grade *Grade
	Email *string
	Phone *string
}

// IsEmpty reports whether the update would change nothing.
func (u UpdateFields) IsEmpty() bool {
	return u.Name == nil && u.Age == nil && u.Grade == nil && u.Email == nil && u.Phone == nil
}

// Apply merges the provided fields into the student and refreshes UpdatedAt.
func (s *Student) Apply(fields UpdateFields) {
	if fields.Name != nil {
		s.Name = strings.TrimSpace(*fields.Name)
	}
	if fields.Age != nil {
		s.Age = *fields.Age
	}
	if fields.Grade != nil {
		s.Grade = fields.Grade.Normalize()
	}
	if fields.Email != nil {
		s.Email = strings.TrimSpace(*fields.Email)
	}
	if fields.Phone != nil {
		s.Phone = strings.TrimSpace(*fields.Phone)
	}
	s.UpdatedAt = time.Now().UTC()
}

// MarshalJSON serializes the record, omitting timestamps that were never set.
// `omitempty` does not apply to struct types, so legacy records loaded from
// five-field files would otherwise gain placeholder dates on their next save.
func (s *Student) MarshalJSON() ([]byte, error) {
	type alias Student
	aux := struct {
		*alias
		CreatedAt *time.Time `json:"created_at,omitempty"`
		UpdatedAt *time.Time `json:"updated_at,omitempty"`
	}{alias: (*alias)(s)}

	if !s.CreatedAt.IsZero() {
		aux.CreatedAt = &s.CreatedAt
	}
	if !s.UpdatedAt.IsZero() {
		aux.UpdatedAt = &s.UpdatedAt
	}

	return json.Marshal(aux)
}

// EnsureID backfills a generated ID on records loaded from legacy files.
func (s *Student) EnsureID() {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
}

// String returns a short representation for logging.
func (s *Student) String() string {
	return fmt.Sprintf("Student{ID: %s, Name: %s, Age: %d, Grade: %s}", s.ID, s.Name, s.Age, s.Grade)
}

// Clone creates a copy of the student.
func (s *Student) Clone() *Student {
	if s == nil {
		return nil
	}

	clone := *s
	return &clone
}
