package core

// errors.go defines the failures the core package reports. The web layer
// classifies them with errors.Is and errors.As; nothing below it inspects
// error text.

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when no user has the requested id.
	ErrUserNotFound = errors.New("user not found")

	// ErrUnsupportedFileFormat is returned when an upload cannot be bound by
	// any parsing strategy.
	ErrUnsupportedFileFormat = errors.New("unsupported file format")

	// ErrTooManyImports is returned when all import slots are occupied and the
	// wait timeout expires. Clients should retry after a short delay.
	ErrTooManyImports = errors.New("too many concurrent imports, please try again later")

	// ErrPageOutOfRange is returned when a page starts beyond the largest
	// offset the store can address.
	ErrPageOutOfRange = errors.New("page out of range")
)

// FileTooLargeError reports an upload exceeding the configured size limit.
type FileTooLargeError struct {
	Limit int64 // bytes
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file exceeds the %d byte upload limit", e.Limit)
}

// LimitMB returns the limit in whole megabytes, rounded up.
func (e *FileTooLargeError) LimitMB() int64 {
	const mb = 1024 * 1024
	return (e.Limit + mb - 1) / mb
}

// MalformedLineError reports a CSV record whose shape does not fit the
// active binding strategy.
type MalformedLineError struct {
	Line int // 1-based record number
	Err  error
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed line %d: %v", e.Line, e.Err)
}

func (e *MalformedLineError) Unwrap() error {
	return e.Err
}

// RequiredHeaderError reports a header row that does not describe a user.
type RequiredHeaderError struct {
	Missing []string // required headers not present
	Unknown []string // headers not matching any field
}

func (e *RequiredHeaderError) Error() string {
	switch {
	case len(e.Missing) > 0 && len(e.Unknown) > 0:
		return fmt.Sprintf("header mismatch: missing %v, unknown %v", e.Missing, e.Unknown)
	case len(e.Missing) > 0:
		return fmt.Sprintf("header mismatch: missing %v", e.Missing)
	default:
		return fmt.Sprintf("header mismatch: unknown %v", e.Unknown)
	}
}

// IntegrityError reports a store constraint violation such as a duplicate
// email or SSN.
type IntegrityError struct {
	Constraint string // violated constraint name, if reported
	Column     string // offending column, if known
	Message    string // user-facing message
	Err        error  // underlying driver error
}

func (e *IntegrityError) Error() string {
	return e.Message
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}
