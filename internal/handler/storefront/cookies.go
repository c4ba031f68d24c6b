// Package storefront holds the HTTP handlers for the buyer-facing API.
package storefront

import (
	"net/http"

	"github.com/serahk/pantrylane/internal/service"
)

// SessionCookieName identifies the buyer's session.
const SessionCookieName = "pantrylane_session"

const sessionCookieMaxAge = 30 * 24 * 60 * 60 // matches the session store TTL

// GetSessionIDFromCookie retrieves the session ID from the session cookie.
// Returns empty string if the cookie is not present.
func GetSessionIDFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetSessionCookie sets the session cookie with appropriate security settings.
func SetSessionCookie(w http.ResponseWriter, sessionID string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// EnsureSession returns the request's session ID, minting a new one and
// setting the cookie when the request arrives without a session.
func EnsureSession(w http.ResponseWriter, r *http.Request, secure bool) (string, error) {
	if sessionID := GetSessionIDFromCookie(r); sessionID != "" {
		return sessionID, nil
	}

	sessionID, err := service.GenerateSessionID()
	if err != nil {
		return "", err
	}
	SetSessionCookie(w, sessionID, secure)
	return sessionID, nil
}
