package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"uk.co.dudmesh.waggle/internal/model"
)

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// failFromError maps expected domain errors to client responses. Anything
// unrecognised is returned to echo's error handler, which logs it and
// answers 500 without leaking detail.
func failFromError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrorValidation):
		return fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrorSelfFollow):
		return fail(c, http.StatusBadRequest, "Cannot follow yourself")
	case errors.Is(err, model.ErrorInvalidUsernameOrPassword):
		return fail(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, model.ErrorInvalidToken):
		return fail(c, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, model.ErrorUserNotFound):
		return fail(c, http.StatusNotFound, "User not found")
	case errors.Is(err, model.ErrorPostNotFound):
		return fail(c, http.StatusNotFound, "Post not found")
	case errors.Is(err, model.ErrorCommentNotFound):
		return fail(c, http.StatusNotFound, "Comment not found")
	case errors.Is(err, model.ErrorDuplicateUser):
		return fail(c, http.StatusConflict, "User already exists with this email or username")
	default:
		return err
	}
}
