package auth

import "net/http"

// SessionCookieName is the single cookie carrying the session bearer token.
const SessionCookieName = "auth_token"

// SessionCookieMaxAge matches the fixed 7-day session lifetime, in seconds.
const SessionCookieMaxAge = 7 * 24 * 60 * 60

// NewSessionCookie builds the cookie issued after sign-up and sign-in.
func NewSessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   SessionCookieMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie builds a cookie that expires the session cookie
// immediately, with the same security attributes as issuance.
func ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}
