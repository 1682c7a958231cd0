package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"uk.co.dudmesh.waggle/internal/model"
)

func CreateComment(posts PostService) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return fail(c, http.StatusUnauthorized, "Authentication required")
		}

		params := &model.CreateCommentParams{}
		if err := c.Bind(params); err != nil {
			return fail(c, http.StatusBadRequest, "Invalid request body")
		}
		if err := params.Validate(); err != nil {
			return failFromError(c, err)
		}
		if params.AuthorID != identity.ID {
			return fail(c, http.StatusForbidden, "Cannot comment as another user")
		}

		view, err := posts.Comment(params)
		if err != nil {
			return failFromError(c, err)
		}

		return c.JSON(http.StatusCreated, map[string]interface{}{
			"success": true,
			"message": "Comment created successfully",
			"data":    view,
		})
	}
}

func ListCommentsForPost(posts PostService) echo.HandlerFunc {
	return func(c echo.Context) error {
		views, err := posts.CommentsForPost(model.PostID(c.Param("postId")))
		if err != nil {
			return failFromError(c, err)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    views,
		})
	}
}
