package api

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/Techjunky-monk39/CasinoLive/internal/session"
	"github.com/Techjunky-monk39/CasinoLive/internal/store"
)

type contextKey string

const userIDKey contextKey = "userID"

// HashPassword returns the hex sha256 digest stored in place of the password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func passwordMatches(hash, password string) bool {
	return subtle.ConstantTimeCompare([]byte(hash), []byte(HashPassword(password))) == 1
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Balance  int    `json:"balance"`
}

func toUserResponse(u *store.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Balance: u.Balance}
}

func (s *Server) setSessionCookie(w http.ResponseWriter, sess session.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if !s.decode(w, r, &creds) {
		return
	}
	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || creds.Password == "" {
		s.writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	u, err := s.store.CreateUser(creds.Username, HashPassword(creds.Password), s.startingBalance)
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			s.writeError(w, http.StatusConflict, "Username already taken")
			return
		}
		s.logger.Error("failed to create user", "err", err)
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.setSessionCookie(w, s.sessions.Create(u.ID))
	s.logger.Info("user registered", "user", u.ID, "username", u.Username)
	s.writeJSON(w, http.StatusCreated, toUserResponse(u))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if !s.decode(w, r, &creds) {
		return
	}

	u, err := s.store.GetUserByUsername(strings.TrimSpace(creds.Username))
	if err != nil || !passwordMatches(u.Password, creds.Password) {
		s.writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	s.setSessionCookie(w, s.sessions.Create(u.ID))
	s.writeJSON(w, http.StatusOK, toUserResponse(u))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		s.sessions.Delete(cookie.Value)
	}
	s.clearSessionCookie(w)
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.GetUser(userID(r))
	if err != nil {
		s.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.writeJSON(w, http.StatusOK, toUserResponse(u))
}

// requireAuth resolves the session cookie and stashes the user id in the
// request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		sess, err := s.sessions.Get(cookie.Value)
		if err != nil {
			s.writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, sess.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey).(int64)
	return id
}
