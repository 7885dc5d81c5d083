package core

// validation.go applies the UserFields table to a candidate record.
//
// Every value is cleaned and normalized first, then checked against its
// FieldSpec. All violations of one record are collected so the caller can
// report each field. CSV imports and the JSON API share this path.

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field name
	Value   string // The invalid value (empty when the field was blank)
	Message string // Human-readable error message
}

// Error returns "<message> (<value>)", or just the message for blank values.
func (e ValidationError) Error() string {
	if e.Value == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Value)
}

// ValidationErrors holds every violation found in one record.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Messages returns one formatted message per violated field.
func (e ValidationErrors) Messages() []string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return msgs
}

// Normalize returns a copy of in with every value cleaned and normalized.
func (in UserInput) Normalize() UserInput {
	out := in
	for i, v := range out.values() {
		raw := CleanCell(*v)
		if n := UserFields[i].Normalizer; n != nil && raw != "" {
			raw = n(raw)
		}
		*v = raw
	}
	return out
}

// ValidateUser normalizes and validates in, returning the resulting User.
// The error is a ValidationErrors listing every violated field.
func ValidateUser(in UserInput) (User, error) {
	norm := in.Normalize()
	vals := norm.values()

	var errs ValidationErrors
	for i, spec := range UserFields {
		if ve, ok := ValidateCell(*vals[i], spec); !ok {
			errs = append(errs, ve)
		}
	}
	if len(errs) > 0 {
		return User{}, errs
	}

	dob, _ := ParseDOB(norm.Dob)
	y, m, d := dob.Date()

	return User{
		FirstName: norm.FirstName,
		LastName:  norm.LastName,
		Address:   norm.Address,
		City:      norm.City,
		State:     norm.State,
		ZipCode:   norm.ZipCode,
		Phone:     optional(norm.Phone),
		Email:     norm.Email,
		Dob:       NewDate(y, m, d),
		Ssn:       norm.Ssn,
		Picture:   optional(norm.Picture),
	}, nil
}

// ValidateCell checks a cleaned value against spec.
func ValidateCell(value string, spec FieldSpec) (ValidationError, bool) {
	if value == "" {
		if spec.Required {
			return ValidationError{Field: spec.Name, Message: spec.Label + " is required"}, false
		}
		return ValidationError{}, true
	}

	fail := ValidationError{Field: spec.Name, Value: value, Message: spec.Message}

	if spec.MaxLen > 0 && utf8.RuneCountInString(value) > spec.MaxLen {
		return fail, false
	}
	if spec.Pattern != nil && !spec.Pattern.MatchString(value) {
		return fail, false
	}
	if spec.Type == FieldDate {
		if _, err := ParseDOB(value); err != nil {
			return fail, false
		}
	}

	return ValidationError{}, true
}
