package server

import (
	"log/slog"
	"net/http"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// register creates a new user account.
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		badRequest(w, "username and password required")
		return
	}

	user, err := s.authn.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		slog.Warn("Registration failed", "username", req.Username, "error", err)
		respondError(w, r, err)
		return
	}

	slog.Info("User registered", "user_id", user.ID, "username", user.Username)
	respondJSON(w, http.StatusCreated, user)
}

// authenticate verifies credentials and issues a JWT token.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		badRequest(w, "username and password required")
		return
	}

	user, err := s.authn.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		slog.Warn("Login failed", "username", req.Username)
		respondError(w, r, err)
		return
	}

	token, err := s.jwtManager.Generate(user.Username)
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.Info("User logged in", "user_id", user.ID, "username", user.Username)
	respondJSON(w, http.StatusOK, tokenResponse{Token: token})
}
