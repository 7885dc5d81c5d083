package core

// convert.go provides conversions between raw cell text, User values and
// PostgreSQL types.
//
// All ToPg* functions return pgtype values with Valid=false for absent input,
// letting the database store NULL.

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula wrapper (="...")
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if len(s) >= 3 && strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = strings.TrimSpace(s[2 : len(s)-1])
	}

	return s
}

// ParseDOB parses a date of birth in strict mm/dd/yyyy form.
func ParseDOB(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !dobRegex.MatchString(s) {
		return time.Time{}, fmt.Errorf("date %q is not in mm/dd/yyyy form", s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// optional returns nil for blank strings.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToPgText converts an optional string to pgtype.Text.
// Returns invalid if s is nil or blank.
func ToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: v, Valid: true}
}

// ToPgDate converts a Date to pgtype.Date.
// Returns invalid for the zero Date.
func ToPgDate(d Date) pgtype.Date {
	if d.IsZero() {
		return pgtype.Date{Valid: false}
	}
	return pgtype.Date{Time: d.Time, Valid: true}
}

// FromPgText converts pgtype.Text back to an optional string.
func FromPgText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

// FromPgDate converts pgtype.Date to a Date.
// Infinity values and NULL map to the zero Date.
func FromPgDate(d pgtype.Date) Date {
	if !d.Valid || d.InfinityModifier != pgtype.Finite {
		return Date{}
	}
	y, m, day := d.Time.Date()
	return NewDate(y, m, day)
}
