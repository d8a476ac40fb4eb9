package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/studentdesk/student-record-manager/internal/domain/record"
)

// Field validation bounds. Ages outside this range are assumed to be typos.
const (
	minAge = 5
	maxAge = 100
)

// readLine prints the label and returns one trimmed line of input.
func (s *Shell) readLine(label string) (string, error) {
	fmt.Fprint(s.out, label)

	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptNonEmpty re-prompts until a non-blank value is entered.
func (s *Shell) promptNonEmpty(label string) (string, error) {
	for {
		value, err := s.readLine(label)
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
		fmt.Fprintln(s.out, "Value cannot be empty. Please try again.")
	}
}

// promptAge re-prompts until a valid age in [minAge, maxAge] is entered.
func (s *Shell) promptAge(label string) (int, error) {
	for {
		value, err := s.readLine(label)
		if err != nil {
			return 0, err
		}
		age, ok := parseInt(value)
		if !ok || age < minAge || age > maxAge {
			fmt.Fprintf(s.out, "Age must be a number between %d and %d.\n", minAge, maxAge)
			continue
		}
		return age, nil
	}
}

// promptGrade re-prompts until one of the canonical grades is entered.
func (s *Shell) promptGrade(label string) (record.Grade, error) {
	for {
		value, err := s.readLine(label)
		if err != nil {
			return "", err
		}
		grade := record.Grade(value).Normalize()
		if grade.IsCanonical() {
			return grade, nil
		}
		fmt.Fprintln(s.out, "Grade must be one of: A, B, C, D, F.")
	}
}

// promptPosition re-prompts until a positive integer is entered.
func (s *Shell) promptPosition(label string) (int, error) {
	for {
		value, err := s.readLine(label)
		if err != nil {
			return 0, err
		}
		position, ok := parseInt(value)
		if !ok || position < 1 {
			fmt.Fprintln(s.out, "Please enter a positive number.")
			continue
		}
		return position, nil
	}
}

// promptUpdateFields collects the partial update for the given record.
// Blank answers keep the current value; invalid age or grade entries are
// reported and the field is skipped rather than re-prompted.
func (s *Shell) promptUpdateFields(current *record.Student) (record.UpdateFields, error) {
	var fields record.UpdateFields

	name, err := s.readLine(fmt.Sprintf("Name [%s]: ", current.Name))
	if err != nil {
		return fields, err
	}
	if name != "" {
		fields.Name = &name
	}

	ageStr, err := s.readLine(fmt.Sprintf("Age [%d]: ", current.Age))
	if err != nil {
		return fields, err
	}
	if ageStr != "" {
		age, ok := parseInt(ageStr)
		if !ok || age < minAge || age > maxAge {
			fmt.Fprintf(s.out, "Invalid age, keeping %d.\n", current.Age)
		} else {
			fields.Age = &age
		}
	}

	gradeStr, err := s.readLine(fmt.Sprintf("Grade [%s]: ", current.Grade))
	if err != nil {
		return fields, err
	}
	if gradeStr != "" {
		grade := record.Grade(gradeStr).Normalize()
		if !grade.IsCanonical() {
			fmt.Fprintf(s.out, "Invalid grade, keeping %s.\n", current.Grade)
		} else {
			fields.Grade = &grade
		}
	}

	email, err := s.readLine(fmt.Sprintf("Email [%s]: ", current.Email))
	if err != nil {
		return fields, err
	}
	if email != "" {
		fields.Email = &email
	}

	phone, err := s.readLine(fmt.Sprintf("Phone [%s]: ", current.Phone))
	if err != nil {
		return fields, err
	}
	if phone != "" {
		fields.Phone = &phone
	}

	return fields, nil
}

// parseInt parses a trimmed decimal integer.
func parseInt(value string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return n, true
}

// isYes accepts "yes" and "y" in any case.
func isYes(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y":
		return true
	default:
		return false
	}
}
