package server

import (
	"net/http"

	"vitrine/pkg/types"
)

// session decodes the request's session cookie. A missing or undecodable
// cookie yields the zero session: not logged in, no pending flashes.
func (s *Service) session(r *http.Request) types.Session {
	cookie, err := r.Cookie(s.config.SessionCookieName)
	if err != nil {
		return types.Session{}
	}

	var sess types.Session
	if err := s.cookie.Decode(s.config.SessionCookieName, cookie.Value, &sess); err != nil {
		s.logger.WithError(err).Debug("failed to decode session cookie")
		return types.Session{}
	}

	return sess
}

// saveSession writes the session back as an encrypted httpOnly cookie.
// Handlers mutate a local copy and save once, so a request never emits more
// than one session Set-Cookie.
func (s *Service) saveSession(w http.ResponseWriter, sess types.Session) {
	encoded, err := s.cookie.Encode(s.config.SessionCookieName, sess)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode session cookie")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.SessionCookieName,
		Value:    encoded,
		HttpOnly: true,
		Secure:   s.config.Environment == "production",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   s.config.SessionMaxAgeSec,
		Path:     "/",
	})
}

func (s *Service) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.SessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   s.config.Environment == "production",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Path:     "/",
	})
}
