// Package timeutil provides the time formatting conventions of the student
// record manager: display timestamps and backup file stamps.
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// DisplayLayout is the human-readable timestamp format shown by the CLI,
// matching the format used in existing data files.
const DisplayLayout = "2006-01-02 15:04:05"

// StampLayout is the compact timestamp embedded in backup file names.
const StampLayout = "20060102_150405"

// Now returns the current time in UTC. All stored timestamps are UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// FormatDisplay renders a timestamp for the CLI, or "-" when unset.
func FormatDisplay(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(DisplayLayout)
}

// Stamp renders a timestamp for use in a backup file name.
func Stamp(t time.Time) string {
	return t.UTC().Format(StampLayout)
}

// ParseStamp parses a backup file stamp back into a time.
func ParseStamp(s string) (time.Time, error) {
	return time.Parse(StampLayout, s)
}
