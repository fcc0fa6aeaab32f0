package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"agentdesk/internal/errors"
	"agentdesk/internal/model"
)

// Context keys under which guards store the resolved identity.
const (
	ContextUserKey    = "auth_user"
	ContextSessionKey = "auth_session"
)

// SessionResolver resolves a bearer token to its user and session. A nil
// user with a nil error means no valid session exists for the token, which
// is a normal outcome, not a failure.
type SessionResolver interface {
	GetSession(ctx context.Context, token string) (*model.User, *model.Session, error)
}

// RequireSession returns middleware that rejects requests without a valid
// cookie session. When redirectTo is empty the request gets a 401 JSON
// response; otherwise the visitor is redirected there. A missing cookie and
// an invalid or expired session produce the same outcome.
func RequireSession(resolver SessionResolver, redirectTo string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, session, err := resolveCookieSession(c, resolver)
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, errors.ErrorResponse{
					Error: "session lookup failed",
					Code:  "STORE_UNAVAILABLE",
				})
			}
			if user == nil {
				if redirectTo != "" {
					return c.Redirect(http.StatusFound, redirectTo)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "unauthorized",
					Code:  "UNAUTHORIZED",
				})
			}
			c.Set(ContextUserKey, user)
			c.Set(ContextSessionKey, session)
			return next(c)
		}
	}
}

// RequireServiceAuth returns middleware for machine-to-machine calls. Either
// a pre-shared bearer secret or a valid cookie session is sufficient proof;
// the two credential kinds carry no scoping distinction.
func RequireServiceAuth(resolver SessionResolver, serviceToken string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if bearer := bearerToken(c.Request()); bearer != "" && serviceToken != "" {
				if subtle.ConstantTimeCompare([]byte(bearer), []byte(serviceToken)) == 1 {
					return next(c)
				}
			}

			user, session, err := resolveCookieSession(c, resolver)
			if err == nil && user != nil {
				c.Set(ContextUserKey, user)
				c.Set(ContextSessionKey, session)
				return next(c)
			}

			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "unauthorized",
				Code:  "UNAUTHORIZED",
			})
		}
	}
}

// UserFromContext returns the user stored by a guard, or nil.
func UserFromContext(c echo.Context) *model.User {
	user, _ := c.Get(ContextUserKey).(*model.User)
	return user
}

func resolveCookieSession(c echo.Context, resolver SessionResolver) (*model.User, *model.Session, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil, nil
	}
	return resolver.GetSession(c.Request().Context(), cookie.Value)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
