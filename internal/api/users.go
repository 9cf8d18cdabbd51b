package api

import (
	"net/http"

	"homehero/internal/models"
)

var (
	opSaveUser  = operation{name: "save_user", failed: "Failed to save user"}
	opListUsers = operation{name: "list_users", failed: "Failed to fetch users"}
	opGetUser   = operation{name: "get_user", failed: "Failed to get user", notFound: "User not found"}
)

func (s *HTTPServer) handleSaveUser(w http.ResponseWriter, r *http.Request) {
	var input models.UserInput
	if err := decodeBody(r, &input); err != nil {
		writeFailure(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := s.deps.Users.SaveUser(r.Context(), r.PathValue("email"), input)
	if err != nil {
		s.fail(w, r, opSaveUser, err)
		return
	}
	writeData(w, "User saved successfully", res)
}

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.deps.Users.ListUsers(r.Context())
	if err != nil {
		s.fail(w, r, opListUsers, err)
		return
	}
	writeData(w, "", users)
}

func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.deps.Users.GetUser(r.Context(), r.PathValue("email"))
	if err != nil {
		s.fail(w, r, opGetUser, err)
		return
	}
	writeData(w, "", user)
}
