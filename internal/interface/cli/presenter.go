package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/studentdesk/student-record-manager/internal/application/query"
	"github.com/studentdesk/student-record-manager/internal/domain/record"
	"github.com/studentdesk/student-record-manager/internal/domain/shared"
	"github.com/studentdesk/student-record-manager/pkg/timeutil"
)

// printMenu writes the main menu.
func (s *Shell) printMenu() {
	fmt.Fprint(s.out, `
========================================
      STUDENT RECORD MANAGER
========================================
1. Add New Student
2. View All Students
3. Search Students
4. Update Student
5. Delete Student
6. View Statistics
7. Backup Records
8. Restore from Backup
9. Exit
========================================
`)
}

// printStudent writes one record with its display position.
func (s *Shell) printStudent(position int, student *record.Student) {
	fmt.Fprintf(s.out, "\n[%d] %s\n", position, student.Name)
	fmt.Fprintf(s.out, "    Age:     %d\n", student.Age)
	fmt.Fprintf(s.out, "    Grade:   %s\n", student.Grade)
	fmt.Fprintf(s.out, "    Email:   %s\n", orDash(student.Email))
	fmt.Fprintf(s.out, "    Phone:   %s\n", orDash(student.Phone))
	fmt.Fprintf(s.out, "    Added:   %s\n", timeutil.FormatDisplay(student.CreatedAt))
}

// printStatistics writes the aggregate report.
func (s *Shell) printStatistics(stats *query.Statistics) {
	fmt.Fprintln(s.out, "\n--- STATISTICS ---")
	fmt.Fprintf(s.out, "Total students: %d\n", stats.TotalStudents)
	fmt.Fprintf(s.out, "Average age:    %.2f\n", stats.AverageAge)
	fmt.Fprintln(s.out, "Grade distribution:")
	for _, grade := range record.CanonicalGrades {
		fmt.Fprintf(s.out, "    %s: %d\n", grade, stats.GradeDistribution[grade])
	}
	extras := make([]record.Grade, 0)
	for grade := range stats.GradeDistribution {
		if !grade.IsCanonical() {
			extras = append(extras, grade)
		}
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i] < extras[j] })
	for _, grade := range extras {
		fmt.Fprintf(s.out, "    %s: %d\n", grade, stats.GradeDistribution[grade])
	}
}

// userMessage maps an error to the line shown to the user. Domain error
// kinds get short phrasing; anything else is printed as-is.
func userMessage(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		return domainErr.Message
	}

	switch {
	case shared.IsNotFound(err):
		return "record not found"
	case shared.IsCorruptData(err):
		return "data file is corrupt"
	case shared.IsIO(err):
		return "file operation failed"
	default:
		return err.Error()
	}
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
