package web

// errors.go translates failures into the response envelope.
//
// Every response body, success or failure, has the same shape:
//
//	{"status": 409, "messages": ["Invalid email address (x)"], "timeStamp": 1700000000000}
//
// translateError maps the closed set of core failures to a status code and
// messages. Anything unrecognized is a 500 carrying the error's own text.

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/usermgmt/internal/core"
	"github.com/JonMunkholm/usermgmt/internal/logging"
)

// Fixed client-facing messages.
const (
	msgUserNotFound     = "User not found"
	msgInvalidFormat    = "Invalid file format."
	msgFileTooLargeFmt  = "File size is too large. File size is limited to %dMB"
	msgUploadSuccessful = "CSV file processed successfully"
	msgPageOutOfRange   = "Invalid value for parameter 'page'"
)

// Envelope is the body of every API status response.
type Envelope struct {
	Status    int      `json:"status"`
	Messages  []string `json:"messages"`
	TimeStamp int64    `json:"timeStamp"` // unix millis
}

// requestError is a client mistake detected by a handler.
type requestError struct {
	msg string
	err error
}

func (e *requestError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *requestError) Unwrap() error {
	return e.err
}

func badRequest(msg string, err error) error {
	return &requestError{msg: msg, err: err}
}

// translateError maps err to a status code and client messages.
func translateError(err error) (int, []string) {
	var (
		tooLarge  *core.FileTooLargeError
		maxBytes  *http.MaxBytesError
		verrs     core.ValidationErrors
		integrity *core.IntegrityError
		lineErr   *core.MalformedLineError
		hdrErr    *core.RequiredHeaderError
		reqErr    *requestError
	)

	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, []string{fmt.Sprintf(msgFileTooLargeFmt, tooLarge.LimitMB())}
	case errors.As(err, &maxBytes):
		limit := &core.FileTooLargeError{Limit: maxBytes.Limit}
		return http.StatusRequestEntityTooLarge, []string{fmt.Sprintf(msgFileTooLargeFmt, limit.LimitMB())}
	case errors.Is(err, core.ErrUserNotFound):
		return http.StatusNotFound, []string{msgUserNotFound}
	case errors.As(err, &verrs):
		return http.StatusConflict, verrs.Messages()
	case errors.As(err, &integrity):
		return http.StatusConflict, []string{integrity.Message}
	case errors.Is(err, core.ErrUnsupportedFileFormat), errors.As(err, &lineErr), errors.As(err, &hdrErr):
		return http.StatusUnsupportedMediaType, []string{msgInvalidFormat}
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, []string{reqErr.msg}
	case errors.Is(err, core.ErrPageOutOfRange):
		return http.StatusBadRequest, []string{msgPageOutOfRange}
	case errors.Is(err, core.ErrTooManyImports):
		return http.StatusServiceUnavailable, []string{core.ErrTooManyImports.Error()}
	}

	// A CSV parse failure surfacing directly under an unrelated error is
	// still a file format problem.
	if _, ok := errors.Unwrap(err).(*csv.ParseError); ok {
		return http.StatusUnsupportedMediaType, []string{msgInvalidFormat}
	}

	return http.StatusInternalServerError, []string{err.Error()}
}

// respondError logs err with request context and writes its envelope.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, messages := translateError(err)

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logging.FromContext(r.Context()).Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
	)

	s.writeEnvelope(w, status, messages...)
}

// writeEnvelope writes a status envelope with the current timestamp.
func (s *Server) writeEnvelope(w http.ResponseWriter, status int, messages ...string) {
	if messages == nil {
		messages = []string{}
	}
	writeJSON(w, status, Envelope{
		Status:    status,
		Messages:  messages,
		TimeStamp: s.now().UnixMilli(),
	})
}

// writeJSON encodes v as JSON with the given status.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
