package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/vovakirdan/beyond2048/internal/auth"
)

type ctxKey struct{}

// UserIDFrom returns the authenticated user set by requireAuth.
func UserIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// authenticate maps a raw token to a user ID, or to the status and message
// to reply with.
func (s *Server) authenticate(token string) (string, int, string) {
	if token == "" {
		return "", http.StatusUnauthorized, "No authentication token, access denied"
	}
	id, err := s.issuer.Verify(token)
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "", http.StatusUnauthorized, "Token has expired"
	case err != nil:
		return "", http.StatusUnauthorized, "Invalid token"
	}
	return id, http.StatusOK, ""
}

func (s *Server) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _ := auth.BearerToken(r.Header.Get("Authorization"))
		id, status, msg := s.authenticate(token)
		if status != http.StatusOK {
			respondError(w, status, msg)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}
