package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"uk.co.dudmesh.waggle/internal/model"
)

type FollowLister interface {
	Followers(userID model.UserID) ([]model.UserSummary, error)
	Following(userID model.UserID) ([]model.UserSummary, error)
}

func ToggleFollow(relations RelationService) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return fail(c, http.StatusUnauthorized, "Authentication required")
		}

		params := &model.ToggleFollowParams{}
		if err := c.Bind(params); err != nil {
			return fail(c, http.StatusBadRequest, "Invalid request body")
		}

		outcome, err := relations.ToggleFollow(identity.ID, params)
		if err != nil {
			return failFromError(c, err)
		}

		message := "Unfollowed user"
		if outcome.Present() {
			message = "Followed user"
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"message": message,
		})
	}
}

func GetFollowers(follows FollowLister) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return fail(c, http.StatusUnauthorized, "Authentication required")
		}

		summaries, err := follows.Followers(identity.ID)
		if err != nil {
			return failFromError(c, err)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    summaries,
		})
	}
}

func GetFollowing(follows FollowLister) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return fail(c, http.StatusUnauthorized, "Authentication required")
		}

		summaries, err := follows.Following(identity.ID)
		if err != nil {
			return failFromError(c, err)
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    summaries,
		})
	}
}
