package auth

import (
	"net/http"
	"time"
)

// CookieName is the name of the session cookie.
const CookieName = "bookshelf_session"

// SessionCookie builds the cookie carrying s. Without remember-me the cookie
// has no expiry and ends with the browser session.
func SessionCookie(s *Session, secure bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    s.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if s.Remember {
		cookie.Expires = s.ExpiresAt
		cookie.MaxAge = int(time.Until(s.ExpiresAt).Seconds())
	}
	return cookie
}

// ClearCookie returns a cookie that deletes the session cookie.
func ClearCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	}
}
