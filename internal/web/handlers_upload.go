package web

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/usermgmt/internal/core"
)

// multipartOverhead is extra body allowance for multipart framing around
// the file part.
const multipartOverhead = 64 << 10

// handleUploadCSV imports the users in the multipart "file" part.
// The whole file is saved or nothing is.
func (s *Server) handleUploadCSV(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Origin") == "" {
		s.respondError(w, r, badRequest("Missing request header 'Origin'", nil))
		return
	}

	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			s.respondError(w, r, &core.FileTooLargeError{Limit: maxSize})
			return
		}
		s.respondError(w, r, badRequest("Invalid multipart request", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, badRequest("Required request part 'file' is not present", err))
		return
	}
	defer file.Close()

	if header.Size > maxSize {
		s.respondError(w, r, &core.FileTooLargeError{Limit: maxSize})
		return
	}

	if _, err := s.service.ImportCSV(r.Context(), file); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.writeEnvelope(w, http.StatusOK, msgUploadSuccessful)
}
