package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/usermgmt/internal/config"
	"github.com/JonMunkholm/usermgmt/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:4200"

var fixedNow = time.UnixMilli(1700000000000)

const (
	csvHeader = "firstName,lastName,address,city,state,zipCode,phone,email,dob,ssn,picture\n"
	rowJohn   = "John,Doe,123 Main St,Springfield,IL,62701,217-555-0100,john@example.com,01/15/1980,123-45-6789,https://example.com/john.png\n"
	rowJane   = "Jane,Roe,9 Elm Rd,Austin,TX,73301,,jane@example.com,07/04/1975,987-65-4321,\n"
)

const johnJSON = `{"firstName":"John","lastName":"Doe","address":"123 Main St","city":"Springfield",` +
	`"state":"IL","zipCode":"62701","phone":"217-555-0100","email":"john@example.com",` +
	`"dob":"01/15/1980","ssn":"123-45-6789","picture":""}`

func testConfig() *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{MaxFileSize: 1024, MaxConcurrent: 2, MaxWaitTime: 50 * time.Millisecond, Timeout: time.Second},
		API:    config.APIConfig{DefaultPageSize: 20, MaxPageSize: 100},
		CORS:   config.CORSConfig{AllowedOrigin: testOrigin, AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"}},
	}
}

func newTestServer(t *testing.T) (*Server, *core.MemoryStore) {
	t.Helper()

	store := core.NewMemoryStore()
	cfg := testConfig()
	svc := core.NewService(store, core.ServiceConfig{
		MaxConcurrentImports: cfg.Upload.MaxConcurrent,
		ImportWaitTime:       cfg.Upload.MaxWaitTime,
		ImportTimeout:        cfg.Upload.Timeout,
	})

	s := NewServer(svc, cfg)
	s.now = func() time.Time { return fixedNow }
	return s, store
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func uploadRequest(t *testing.T, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mpw := multipart.NewWriter(&body)
	part, err := mpw.CreateFormFile("file", "users.csv")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mpw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/users/upload-csv", &body)
	req.Header.Set("Content-Type", mpw.FormDataContentType())
	req.Header.Set("Origin", testOrigin)
	return req
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestUpload_HeaderFile(t *testing.T) {
	s, store := newTestServer(t)

	rec := do(t, s, uploadRequest(t, []byte(csvHeader+rowJohn+rowJane)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, []string{msgUploadSuccessful}, env.Messages)
	assert.Equal(t, fixedNow.UnixMilli(), env.TimeStamp)

	n, err := store.Count(t.Context())
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestUpload_PositionalFile(t *testing.T) {
	s, store := newTestServer(t)

	rec := do(t, s, uploadRequest(t, []byte(rowJohn)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	n, err := store.Count(t.Context())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUpload_InvalidRecordSavesNothing(t *testing.T) {
	s, store := newTestServer(t)
	bad := strings.Replace(rowJane, "jane@example.com", "not-an-email", 1)

	rec := do(t, s, uploadRequest(t, []byte(csvHeader+rowJohn+bad)))

	require.Equal(t, http.StatusConflict, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusConflict, env.Status)
	assert.Equal(t, []string{"Invalid email address (not-an-email)"}, env.Messages)

	n, err := store.Count(t.Context())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUpload_DuplicateEmail(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, uploadRequest(t, []byte(rowJohn)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, uploadRequest(t, []byte(rowJohn)))
	require.Equal(t, http.StatusConflict, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Len(t, env.Messages, 1)
	assert.Contains(t, env.Messages[0], "john@example.com")
}

func TestUpload_BinaryFile(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, uploadRequest(t, []byte{0xff, 0xfe, 0x00, 0x01, 0x89, 'P', 'N', 'G'}))

	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, []string{msgInvalidFormat}, decodeEnvelope(t, rec).Messages)
}

func TestUpload_EmptyFile(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, uploadRequest(t, nil))

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestUpload_FileTooLarge(t *testing.T) {
	s, _ := newTestServer(t)
	content := []byte(csvHeader + strings.Repeat(rowJohn, 20))
	require.Greater(t, int64(len(content)), s.cfg.Upload.MaxFileSize)

	rec := do(t, s, uploadRequest(t, content))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, []string{"File size is too large. File size is limited to 1MB"}, decodeEnvelope(t, rec).Messages)
}

func TestUpload_MissingOrigin(t *testing.T) {
	s, _ := newTestServer(t)
	req := uploadRequest(t, []byte(rowJohn))
	req.Header.Del("Origin")

	rec := do(t, s, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Missing request header 'Origin'"}, decodeEnvelope(t, rec).Messages)
}

func TestUpload_MissingFilePart(t *testing.T) {
	s, _ := newTestServer(t)

	var body bytes.Buffer
	mpw := multipart.NewWriter(&body)
	require.NoError(t, mpw.WriteField("other", "value"))
	require.NoError(t, mpw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/users/upload-csv", &body)
	req.Header.Set("Content-Type", mpw.FormDataContentType())
	req.Header.Set("Origin", testOrigin)

	rec := do(t, s, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Required request part 'file' is not present"}, decodeEnvelope(t, rec).Messages)
}

func TestUsers_CRUD(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, httptest.NewRequest(http.MethodPost, "/api/users/", strings.NewReader(johnJSON)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created core.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)
	assert.Equal(t, "john@example.com", created.Email)
	assert.Nil(t, created.Picture)
	assert.Equal(t, "/api/users/1", rec.Header().Get("Location"))

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/api/users/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dob":"01/15/1980"`)

	updated := strings.Replace(johnJSON, "Springfield", "Chicago", 1)
	rec = do(t, s, httptest.NewRequest(http.MethodPut, "/api/users/1", strings.NewReader(updated)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"city":"Chicago"`)

	rec = do(t, s, httptest.NewRequest(http.MethodDelete, "/api/users/1", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/api/users/1", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, []string{msgUserNotFound}, decodeEnvelope(t, rec).Messages)
}

func TestUsers_NotFound(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		method string
		body   string
	}{
		{http.MethodGet, ""},
		{http.MethodPut, johnJSON},
		{http.MethodDelete, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			rec := do(t, s, httptest.NewRequest(tt.method, "/api/users/42", strings.NewReader(tt.body)))
			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, []string{msgUserNotFound}, decodeEnvelope(t, rec).Messages)
		})
	}
}

func TestUsers_BadRequests(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name    string
		method  string
		target  string
		body    string
		wantMsg string
	}{
		{"non-numeric id", http.MethodGet, "/api/users/abc", "", "Invalid user id"},
		{"negative page", http.MethodGet, "/api/users/?page=-1", "", "Invalid value for parameter 'page'"},
		{"non-numeric size", http.MethodGet, "/api/users/?size=ten", "", "Invalid value for parameter 'size'"},
		{"malformed json", http.MethodPost, "/api/users/", `{"firstName":`, "Malformed JSON request"},
		{"trailing json", http.MethodPost, "/api/users/", johnJSON + `{}`, "Malformed JSON request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body)))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, []string{tt.wantMsg}, decodeEnvelope(t, rec).Messages)
		})
	}
}

func TestUsers_CreateInvalid(t *testing.T) {
	s, _ := newTestServer(t)
	body := strings.NewReplacer("62701", "627", `"state":"IL"`, `"state":"Illinoisx"`).Replace(johnJSON)

	rec := do(t, s, httptest.NewRequest(http.MethodPost, "/api/users/", strings.NewReader(body)))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, []string{
		"Invalid state abbreviation. State must be in the form of XX (Illinoisx)",
		"Invalid zip code. Zip code must be in the form of 99999 (627)",
	}, decodeEnvelope(t, rec).Messages)
}

func TestUsers_ListPaging(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, uploadRequest(t, []byte(csvHeader+rowJohn+rowJane)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/api/users/?page=1&size=1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body userCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, pageInfo{Size: 1, TotalElements: 2, TotalPages: 2, Number: 1}, body.Page)
	require.Len(t, body.Embedded.Users, 1)
	assert.Equal(t, "jane@example.com", body.Embedded.Users[0].Email)
}

func TestUsers_ListEmpty(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/users/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"_embedded":{"users":[]},"page":{"size":20,"totalElements":0,"totalPages":0,"number":0}}`,
		rec.Body.String())
}

func TestUsers_ListSizeCapped(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/users/?size=5000", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body userCollection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, s.cfg.API.MaxPageSize, body.Page.Size)
}

func TestCORS(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, httptest.NewRequest(http.MethodOptions, "/api/users/upload-csv", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, testOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS, HEAD", rec.Header().Get("Access-Control-Allow-Methods"))

	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/api/users/", nil))
	assert.Equal(t, testOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	s, store := newTestServer(t)

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"OK"}, decodeEnvelope(t, rec).Messages)

	store.PingErr = assert.AnError
	rec = do(t, s, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/nothing", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusNotFound, env.Status)
	assert.Equal(t, fixedNow.UnixMilli(), env.TimeStamp)
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)
	defer rl.stop()

	assert.True(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.2"))
}

func TestUsers_ListPageOutOfRange(t *testing.T) {
	s, _ := newTestServer(t)

	for _, page := range []string{"9223372036854775807", "107374183", "999999999999999"} {
		t.Run(page, func(t *testing.T) {
			rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/users/?size=20&page="+page, nil))

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, []string{"Invalid value for parameter 'page'"}, decodeEnvelope(t, rec).Messages)
		})
	}
}

func TestRecoverer_WritesEnvelope(t *testing.T) {
	s, _ := newTestServer(t)
	s.router.Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("store exploded")
	})

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusInternalServerError, env.Status)
	assert.Equal(t, []string{"store exploded"}, env.Messages)
}
