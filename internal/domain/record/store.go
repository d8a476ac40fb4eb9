package record

import (
	"github.com/studentdesk/student-record-manager/internal/domain/shared"
)

// Store holds the ordered sequence of student records for the session.
// It is the single source of truth while the process runs; persistence is a
// separate concern triggered by the command handlers after each mutation.
//
// The store is not safe for concurrent use. The application is single-user
// and single-threaded, so no locking discipline is required.
type Store struct {
	students []*Student
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{students: make([]*Student, 0)}
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.students)
}

// All returns the full ordered sequence of records.
// The returned slice is a copy; the records themselves are shared, so callers
// that mutate them must do so through the command handlers.
func (s *Store) All() []*Student {
	out := make([]*Student, len(s.students))
	copy(out, s.students)
	return out
}

// Get returns the record at the given zero-based index.
func (s *Store) Get(index int) (*Student, error) {
	if index < 0 || index >= len(s.students) {
		return nil, shared.ErrInvalidIndex
	}
	return s.students[index], nil
}

// Append adds a record at the end of the sequence. It always succeeds.
func (s *Store) Append(student *Student) {
	s.students = append(s.students, student)
}

// Replace overwrites the record at the given zero-based index.
func (s *Store) Replace(index int, student *Student) error {
	if index < 0 || index >= len(s.students) {
		return shared.ErrInvalidIndex
	}
	s.students[index] = student
	return nil
}

// RemoveAt deletes the record at the given zero-based index, shifting
// subsequent records. Insertion order of the remainder is preserved.
func (s *Store) RemoveAt(index int) error {
	if index < 0 || index >= len(s.students) {
		return shared.ErrInvalidIndex
	}
	s.students = append(s.students[:index], s.students[index+1:]...)
	return nil
}

// ReplaceAll swaps the whole sequence, used by load and restore.
func (s *Store) ReplaceAll(students []*Student) {
	if students == nil {
		students = make([]*Student, 0)
	}
	s.students = students
}
