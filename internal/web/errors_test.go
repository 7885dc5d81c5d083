package web

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JonMunkholm/usermgmt/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	parseErr := &csv.ParseError{StartLine: 2, Line: 2, Column: 5, Err: csv.ErrQuote}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsgs   []string
	}{
		{
			name:       "not found",
			err:        fmt.Errorf("get: %w", core.ErrUserNotFound),
			wantStatus: http.StatusNotFound,
			wantMsgs:   []string{msgUserNotFound},
		},
		{
			name: "validation",
			err: fmt.Errorf("line 3: %w", core.ValidationErrors{
				{Field: "zipCode", Value: "1", Message: "Invalid zip code. Zip code must be in the form of 99999"},
				{Field: "ssn", Message: "SSN is required"},
			}),
			wantStatus: http.StatusConflict,
			wantMsgs:   []string{"Invalid zip code. Zip code must be in the form of 99999 (1)", "SSN is required"},
		},
		{
			name:       "integrity",
			err:        &core.IntegrityError{Constraint: "users_email_key", Column: "email", Message: "duplicate key value violates unique constraint on email (a@b.co)"},
			wantStatus: http.StatusConflict,
			wantMsgs:   []string{"duplicate key value violates unique constraint on email (a@b.co)"},
		},
		{
			name:       "unsupported format",
			err:        fmt.Errorf("%w: %w", core.ErrUnsupportedFileFormat, errors.New("no strategy")),
			wantStatus: http.StatusUnsupportedMediaType,
			wantMsgs:   []string{msgInvalidFormat},
		},
		{
			name:       "malformed line",
			err:        &core.MalformedLineError{Line: 4, Err: parseErr},
			wantStatus: http.StatusUnsupportedMediaType,
			wantMsgs:   []string{msgInvalidFormat},
		},
		{
			name:       "header mismatch",
			err:        &core.RequiredHeaderError{Missing: []string{"email"}},
			wantStatus: http.StatusUnsupportedMediaType,
			wantMsgs:   []string{msgInvalidFormat},
		},
		{
			name:       "csv parse error under another error",
			err:        fmt.Errorf("read upload: %w", parseErr),
			wantStatus: http.StatusUnsupportedMediaType,
			wantMsgs:   []string{msgInvalidFormat},
		},
		{
			name:       "file too large",
			err:        &core.FileTooLargeError{Limit: 5 << 20},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantMsgs:   []string{"File size is too large. File size is limited to 5MB"},
		},
		{
			name:       "max bytes",
			err:        fmt.Errorf("multipart: %w", &http.MaxBytesError{Limit: 3 << 20}),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantMsgs:   []string{"File size is too large. File size is limited to 3MB"},
		},
		{
			name:       "bad request",
			err:        badRequest("Invalid user id", errors.New("strconv")),
			wantStatus: http.StatusBadRequest,
			wantMsgs:   []string{"Invalid user id"},
		},
		{
			name:       "page out of range",
			err:        fmt.Errorf("%w: page 9 of size 20", core.ErrPageOutOfRange),
			wantStatus: http.StatusBadRequest,
			wantMsgs:   []string{"Invalid value for parameter 'page'"},
		},
		{
			name:       "import slots busy",
			err:        core.ErrTooManyImports,
			wantStatus: http.StatusServiceUnavailable,
			wantMsgs:   []string{core.ErrTooManyImports.Error()},
		},
		{
			name:       "unknown",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantMsgs:   []string{"connection reset"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msgs := translateError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsgs, msgs)
		})
	}
}

func TestWriteEnvelope_EmptyMessages(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()

	s.writeEnvelope(rec, http.StatusOK)

	assert.JSONEq(t, `{"status":200,"messages":[],"timeStamp":1700000000000}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
