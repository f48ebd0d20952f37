package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/Alexandra151/LibrarySystem/internal/http/response"
	"github.com/Alexandra151/LibrarySystem/internal/service"
)

// handleLogin authenticates a user and returns an access token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}
