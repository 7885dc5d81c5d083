package core

// csvimport.go turns an uploaded CSV file into validated users.
//
// Two binding strategies are tried in order:
//
//  1. Header: the first record names the columns (any order, case-insensitive).
//  2. Positional: no header; column N is UserFields[N].
//
// The positional strategy runs only when header binding fails with a
// *RequiredHeaderError or *MalformedLineError. Validation happens after
// binding, independent of the strategy, and stops at the first invalid record.

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/JonMunkholm/usermgmt/internal/logging"
)

// Strategy names the binding strategy that accepted a file.
type Strategy string

const (
	StrategyHeader     Strategy = "header"
	StrategyPositional Strategy = "positional"
)

var errInvalidUTF8 = errors.New("file is not valid UTF-8")

// csvRecord is one non-blank CSV record with its starting line number.
type csvRecord struct {
	line   int
	fields []string
}

// ParseResult is the outcome of a successful parse.
type ParseResult struct {
	Users    []User
	Strategy Strategy
}

// ParseUsers reads r as CSV and returns the validated users it contains.
//
// Errors:
//   - ErrUnsupportedFileFormat (wrapping the cause) when no strategy can bind the file
//   - ValidationErrors for the first record that fails field validation
//   - read errors from r, wrapped
func ParseUsers(ctx context.Context, r io.Reader) (*ParseResult, error) {
	data, err := io.ReadAll(NewBOMSkippingReader(r))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFileFormat, &MalformedLineError{Line: invalidUTF8Line(data), Err: errInvalidUTF8})
	}

	records, err := readRecords(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFileFormat, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no records", ErrUnsupportedFileFormat)
	}

	logger := logging.FromContext(ctx)

	strategy := StrategyHeader
	inputs, err := bindByHeader(records)
	if err != nil {
		var hdrErr *RequiredHeaderError
		var lineErr *MalformedLineError
		if !errors.As(err, &hdrErr) && !errors.As(err, &lineErr) {
			return nil, err
		}

		logger.Debug("header binding failed, trying positional", "reason", err.Error())

		strategy = StrategyPositional
		inputs, err = bindByPosition(records)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFileFormat, err)
		}
	}

	users := make([]User, 0, len(inputs))
	for _, in := range inputs {
		u, err := ValidateUser(in.input)
		if err != nil {
			logger.Info("csv record failed validation",
				"strategy", strategy,
				"line", in.line,
			)
			return nil, fmt.Errorf("line %d: %w", in.line, err)
		}
		users = append(users, u)
	}

	logger.Info("csv parsed",
		"strategy", strategy,
		"records", len(users),
	)

	return &ParseResult{Users: users, Strategy: strategy}, nil
}

// readRecords parses data as CSV, dropping blank records.
// Field counts are checked by the binding strategies, not here.
func readRecords(data []byte) ([]csvRecord, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	var records []csvRecord
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &MalformedLineError{Line: parseErr.StartLine, Err: err}
			}
			return nil, err
		}

		if isEmptyRow(fields) {
			continue
		}

		line, _ := reader.FieldPos(0)
		records = append(records, csvRecord{line: line, fields: fields})
	}

	return records, nil
}

// boundInput is a candidate record with the line it came from.
type boundInput struct {
	line  int
	input UserInput
}

// bindByHeader treats the first record as a header naming the columns.
func bindByHeader(records []csvRecord) ([]boundInput, error) {
	header := records[0]

	columns := make([]int, len(header.fields))
	seen := make(map[int]bool, len(header.fields))
	var unknown []string

	for i, h := range header.fields {
		name := CleanCell(h)
		pos, ok := LookupField(name)
		if !ok || seen[pos] {
			unknown = append(unknown, name)
			continue
		}
		columns[i] = pos
		seen[pos] = true
	}

	var missing []string
	for i, spec := range UserFields {
		if spec.Required && !seen[i] {
			missing = append(missing, spec.Name)
		}
	}

	if len(missing) > 0 || len(unknown) > 0 {
		return nil, &RequiredHeaderError{Missing: missing, Unknown: unknown}
	}

	out := make([]boundInput, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec.fields) != len(header.fields) {
			return nil, &MalformedLineError{
				Line: rec.line,
				Err:  fmt.Errorf("expected %d fields, got %d", len(header.fields), len(rec.fields)),
			}
		}

		var in UserInput
		vals := in.values()
		for i, cell := range rec.fields {
			*vals[columns[i]] = cell
		}
		out = append(out, boundInput{line: rec.line, input: in})
	}

	return out, nil
}

// bindByPosition maps column N of every record to UserFields[N].
func bindByPosition(records []csvRecord) ([]boundInput, error) {
	out := make([]boundInput, 0, len(records))
	for _, rec := range records {
		if len(rec.fields) != len(UserFields) {
			return nil, &MalformedLineError{
				Line: rec.line,
				Err:  fmt.Errorf("expected %d fields, got %d", len(UserFields), len(rec.fields)),
			}
		}

		var in UserInput
		for i, v := range in.values() {
			*v = rec.fields[i]
		}
		out = append(out, boundInput{line: rec.line, input: in})
	}

	return out, nil
}

// isEmptyRow returns true if every cell is blank.
func isEmptyRow(fields []string) bool {
	for _, f := range fields {
		if CleanCell(f) != "" {
			return false
		}
	}
	return true
}

// invalidUTF8Line returns the 1-based line holding the first invalid byte.
func invalidUTF8Line(data []byte) int {
	line := 1
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size <= 1 {
			return line
		}
		if r == '\n' {
			line++
		}
		data = data[size:]
	}
	return line
}
