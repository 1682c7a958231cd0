package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"uk.co.dudmesh.waggle/internal/model"
)

const identityContextKey = "waggle.identity"
const tokenCookieName = "token"
const bearerPrefix = "Bearer "

type TokenVerifier interface {
	Verify(raw string) (model.Identity, error)
}

// tokenFromRequest extracts the raw token, preferring the Authorization
// header over the cookie.
func tokenFromRequest(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimPrefix(header, bearerPrefix)
	}
	if cookie, err := c.Cookie(tokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Authenticate is the single trust boundary for protected routes. It rejects
// requests without a verifiable token and attaches the resolved identity to
// the request context; downstream handlers read it back with CurrentIdentity
// and never re-verify. Missing and invalid tokens are deliberately
// indistinguishable beyond the message text.
func Authenticate(tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return fail(c, http.StatusUnauthorized, "Authentication required. No token provided.")
			}
			identity, err := tokens.Verify(raw)
			if err != nil {
				return fail(c, http.StatusUnauthorized, "Invalid or expired token.")
			}
			c.Set(identityContextKey, identity)
			return next(c)
		}
	}
}

// MaybeAuthenticate attaches an identity when a valid token is present and
// continues anonymously otherwise. Used on routes whose responses are
// personalised but public.
func MaybeAuthenticate(tokens TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw := tokenFromRequest(c); raw != "" {
				if identity, err := tokens.Verify(raw); err == nil {
					c.Set(identityContextKey, identity)
				}
			}
			return next(c)
		}
	}
}

func CurrentIdentity(c echo.Context) (model.Identity, bool) {
	identity, ok := c.Get(identityContextKey).(model.Identity)
	return identity, ok
}
