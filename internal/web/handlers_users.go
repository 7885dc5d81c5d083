package web

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/usermgmt/internal/core"
)

// userCollection is the paged list representation.
type userCollection struct {
	Embedded struct {
		Users []core.User `json:"users"`
	} `json:"_embedded"`
	Page pageInfo `json:"page"`
}

type pageInfo struct {
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
}

// handleListUsers returns one page of users: ?page=0&size=20.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := parseIntParam(r, "page", 0)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	size, err := parseIntParam(r, "size", s.cfg.API.DefaultPageSize)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if size == 0 {
		size = s.cfg.API.DefaultPageSize
	}
	size = min(size, s.cfg.API.MaxPageSize)

	result, err := s.service.ListUsers(r.Context(), page, size)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var body userCollection
	body.Embedded.Users = result.Users
	if body.Embedded.Users == nil {
		body.Embedded.Users = []core.User{}
	}
	body.Page = pageInfo{
		Size:          result.Size,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
		Number:        result.Number,
	}

	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	user, err := s.service.GetUser(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in core.UserInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	user, err := s.service.CreateUser(r.Context(), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/users/"+strconv.FormatInt(user.ID, 10))
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var in core.UserInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	user, err := s.service.UpdateUser(r.Context(), id, in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.service.DeleteUser(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
