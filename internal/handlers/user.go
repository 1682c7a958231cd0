package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"uk.co.dudmesh.waggle/internal/model"
)

type UserService interface {
	Register(params *model.CreateUserParams) (*model.User, error)
	Login(params *model.LoginParams) (*model.User, error)
	Profile(username string, viewer model.UserID) (*model.Profile, error)
}

type TokenService interface {
	Issue(identity model.Identity) (string, error)
	Verify(raw string) (model.Identity, error)
	TTL() time.Duration
}

type CookieConfig interface {
	IsProduction() bool
}

func setTokenCookie(c echo.Context, config CookieConfig, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	})
}

func clearTokenCookie(c echo.Context, config CookieConfig) {
	c.SetCookie(&http.Cookie{
		Name:     tokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	})
}

func Register(config CookieConfig, users UserService, tokens TokenService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.CreateUserParams{}
		if err := c.Bind(params); err != nil {
			return fail(c, http.StatusBadRequest, "Invalid request body")
		}
		if err := params.Validate(); err != nil {
			return failFromError(c, err)
		}

		user, err := users.Register(params)
		if err != nil {
			return failFromError(c, err)
		}

		token, err := tokens.Issue(model.Identity{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
		if err != nil {
			return err
		}
		setTokenCookie(c, config, token, tokens.TTL())

		return c.JSON(http.StatusCreated, map[string]interface{}{
			"success":  true,
			"message":  "User registered successfully",
			"userId":   user.ID,
			"username": user.Username,
			"token":    token,
		})
	}
}

func Login(config CookieConfig, users UserService, tokens TokenService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.LoginParams{}
		if err := c.Bind(params); err != nil {
			return fail(c, http.StatusBadRequest, "Invalid request body")
		}
		if err := params.Validate(); err != nil {
			return failFromError(c, err)
		}

		user, err := users.Login(params)
		if err != nil {
			return failFromError(c, err)
		}

		token, err := tokens.Issue(model.Identity{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
		if err != nil {
			return err
		}
		setTokenCookie(c, config, token, tokens.TTL())

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":  true,
			"message":  "User logged in successfully",
			"userId":   user.ID,
			"username": user.Username,
			"token":    token,
		})
	}
}

// Logout clears the cookie only. Already-issued tokens stay valid until
// expiry; there is no revocation list.
func Logout(config CookieConfig) echo.HandlerFunc {
	return func(c echo.Context) error {
		clearTokenCookie(c, config)
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "User logged out successfully",
		})
	}
}

func GetProfile(users UserService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var viewer model.UserID
		if identity, ok := CurrentIdentity(c); ok {
			viewer = identity.ID
		}

		profile, err := users.Profile(c.Param("username"), viewer)
		if err != nil {
			return failFromError(c, err)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"user":    profile,
		})
	}
}
