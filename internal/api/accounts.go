package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/vovakirdan/beyond2048/internal/auth"
	"github.com/vovakirdan/beyond2048/internal/storage"
)

type credentials struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	if req.Name == "" || req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Please provide name, username and password")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	switch {
	case errors.Is(err, auth.ErrPasswordTooShort):
		respondError(w, http.StatusBadRequest, "Password is too short")
		return
	case errors.Is(err, auth.ErrPasswordTooLong):
		respondError(w, http.StatusBadRequest, "Password is too long")
		return
	case err != nil:
		s.logger.Error("password hashing failed", "err", err)
		respondError(w, http.StatusInternalServerError, "Server error during signup")
		return
	}

	user, err := s.store.CreateUser(r.Context(), req.Name, req.Username, hash)
	if errors.Is(err, storage.ErrUsernameTaken) {
		respondError(w, http.StatusBadRequest, "User with this username already exists")
		return
	}
	if err != nil {
		s.logger.Error("signup failed", "err", err)
		respondError(w, http.StatusInternalServerError, "Server error during signup")
		return
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		s.logger.Error("token issue failed", "err", err)
		respondError(w, http.StatusInternalServerError, "Server error during signup")
		return
	}

	s.logger.Info("user registered", "username", user.Username)
	respondJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "User registered successfully",
		Token:   token,
		User:    user,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.store.UserByUsername(r.Context(), req.Username)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		s.logger.Error("login lookup failed", "err", err)
		respondError(w, http.StatusInternalServerError, "Server error during login")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		s.logger.Error("token issue failed", "err", err)
		respondError(w, http.StatusInternalServerError, "Server error during login")
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// handleLogout exists for client symmetry; tokens are stateless.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Logged out successfully"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	id, _ := UserIDFrom(r.Context())

	user, err := s.store.UserByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		s.logger.Error("user lookup failed", "err", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	sum, err := s.store.Stats(r.Context(), id)
	if err != nil {
		s.logger.Error("stats lookup failed", "err", err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, envelope{Success: true, User: user, Data: sum})
}
