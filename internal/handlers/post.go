package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"uk.co.dudmesh.waggle/internal/model"
)

type PostService interface {
	Create(params *model.CreatePostParams) (*model.PostView, error)
	Fetch(postID model.PostID, viewer model.UserID) (*model.PostView, error)
	List(viewer model.UserID, page, limit int) ([]model.PostView, *model.Pagination, error)
	Comment(params *model.CreateCommentParams) (*model.CommentView, error)
	CommentsForPost(postID model.PostID) ([]model.CommentView, error)
}

type RelationService interface {
	ToggleFollow(actor model.UserID, params *model.ToggleFollowParams) (model.ToggleOutcome, error)
	ToggleLike(actor model.UserID, postID model.PostID) (*model.PostView, model.ToggleOutcome, error)
}

func CreatePost(posts PostService) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return fail(c, http.StatusUnauthorized, "Authentication required")
		}

		params := &model.CreatePostParams{}
		if err := c.Bind(params); err != nil {
			return fail(c, http.StatusBadRequest, "Invalid request body")
		}
		if err := params.Validate(); err != nil {
			return failFromError(c, err)
		}
		if params.AuthorID != identity.ID {
			return fail(c, http.StatusForbidden, "Cannot create posts for another user")
		}

		view, err := posts.Create(params)
		if err != nil {
			return failFromError(c, err)
		}

		return c.JSON(http.StatusCreated, map[string]interface{}{
			"success": true,
			"message": "Post created successfully",
			"data":    view,
		})
	}
}

func ListPosts(posts PostService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var viewer model.UserID
		if identity, ok := CurrentIdentity(c); ok {
			viewer = identity.ID
		}

		page, _ := strconv.Atoi(c.QueryParam("page"))
		limit, _ := strconv.Atoi(c.QueryParam("limit"))

		views, pagination, err := posts.List(viewer, page, limit)
		if err != nil {
			return failFromError(c, err)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":    true,
			"data":       views,
			"pagination": pagination,
		})
	}
}

func GetPost(posts PostService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var viewer model.UserID
		if identity, ok := CurrentIdentity(c); ok {
			viewer = identity.ID
		}

		view, err := posts.Fetch(model.PostID(c.Param("id")), viewer)
		if err != nil {
			return failFromError(c, err)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    view,
		})
	}
}

func ToggleLike(relations RelationService) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return fail(c, http.StatusUnauthorized, "Authentication required")
		}

		postID := model.PostID(c.Param("id"))
		if postID == "" {
			return fail(c, http.StatusBadRequest, "Post ID is required")
		}

		view, outcome, err := relations.ToggleLike(identity.ID, postID)
		if err != nil {
			return failFromError(c, err)
		}

		message := "Post unliked"
		if outcome.Present() {
			message = "Post liked"
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"message": message,
			"data":    view,
		})
	}
}
