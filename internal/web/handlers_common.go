package web

// handlers_common.go contains request parsing helpers shared by handlers.

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// maxJSONBodySize bounds JSON request bodies (1MB).
const maxJSONBodySize = 1 << 20

// parseIntParam parses a non-negative integer query parameter.
// A missing parameter yields defaultVal.
func parseIntParam(r *http.Request, name string, defaultVal int) (int, error) {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return 0, badRequest("Invalid value for parameter '"+name+"'", err)
	}
	return i, nil
}

// parseUserID reads the {id} route parameter.
func parseUserID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("Invalid user id", err)
	}
	return id, nil
}

// decodeJSON decodes a single JSON value from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return badRequest("Malformed JSON request", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return badRequest("Malformed JSON request", errors.New("unexpected data after JSON value"))
	}
	return nil
}
