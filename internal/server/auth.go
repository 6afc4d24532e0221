package server

import (
	"net/http"
	"strings"

	"vitrine/pkg/types"

	"golang.org/x/crypto/bcrypt"
)

// handleAdminLogin authenticates the admin account against the stored
// bcrypt hash and raises the session's admin flag. Failures are uniformly
// 401 with a generic message so the response never confirms a username.
func (s *Service) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Error("failed to parse login form")
		s.failLogin(w, r)
		return
	}

	var input types.LoginForm
	if err := decoder.Decode(&input, r.PostForm); err != nil {
		s.logger.WithError(err).Error("failed to decode login form")
		s.failLogin(w, r)
		return
	}

	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		s.failLogin(w, r)
		return
	}

	admin, err := s.admins.AdminByUsername(r.Context(), username)
	if err != nil {
		s.logger.WithField("username", username).Warn("login failed: unknown admin user")
		s.failLogin(w, r)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		s.logger.WithField("username", username).Warn("login failed: wrong password")
		s.failLogin(w, r)
		return
	}

	sess := s.session(r)
	sess.AdminLoggedIn = true
	s.saveSession(w, sess)

	s.logger.WithField("username", username).Info("admin logged in")

	if wantsJSON(r) {
		s.respondJSON(w, http.StatusOK, envelope{Success: true, Message: msgLoggedIn})
		return
	}
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (s *Service) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSession(w)

	if wantsJSON(r) {
		s.respondJSON(w, http.StatusOK, envelope{Success: true, Message: msgLoggedOut})
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Service) failLogin(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		s.jsonError(w, http.StatusUnauthorized, msgLoginFailed)
		return
	}

	sess := s.session(r)
	sess.ErrorMessage = msgLoginFailed
	s.saveSession(w, sess)
	http.Redirect(w, r, "/admin", http.StatusFound)
}
