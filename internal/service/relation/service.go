// Package relation implements the follow and like toggles. A toggle flips
// the edge state without the caller naming the target state, so a retry of a
// successful toggle reverses it; callers must not retry blindly.
package relation

import (
	"fmt"

	"uk.co.dudmesh.waggle/internal/model"
)

type Database interface {
	UserByUsername(username string) (*model.User, error)
	UserExists(id model.UserID) (bool, error)
	PostExists(id model.PostID) (bool, error)
	ToggleFollow(follower, followee model.UserID) (model.ToggleOutcome, error)
	ToggleLike(user model.UserID, post model.PostID) (model.ToggleOutcome, error)
	PostView(id model.PostID, viewer model.UserID) (*model.PostView, error)
}

type service struct {
	db Database
}

func New(db Database) *service {
	return &service{db}
}

// ToggleFollow flips the follow edge from actor to the target named by id or
// username. The target must exist and differ from the actor; everything past
// that is decided by the storage layer's unique index.
func (s *service) ToggleFollow(actor model.UserID, params *model.ToggleFollowParams) (model.ToggleOutcome, error) {
	target := params.TargetUserID
	if target == "" {
		if params.TargetUsername == "" {
			return 0, fmt.Errorf("%w: targetUserId or targetUsername is required", model.ErrorValidation)
		}
		user, err := s.db.UserByUsername(params.TargetUsername)
		if err != nil {
			return 0, err
		}
		target = user.ID
	} else {
		exists, err := s.db.UserExists(target)
		if err != nil {
			return 0, fmt.Errorf("resolving target: %w", err)
		}
		if !exists {
			return 0, model.ErrorUserNotFound
		}
	}

	if target == actor {
		return 0, model.ErrorSelfFollow
	}

	outcome, err := s.db.ToggleFollow(actor, target)
	if err != nil {
		return 0, fmt.Errorf("toggling follow: %w", err)
	}
	return outcome, nil
}

// ToggleLike flips the actor's like on a post and returns the refreshed post
// view with the resulting like count and state.
func (s *service) ToggleLike(actor model.UserID, postID model.PostID) (*model.PostView, model.ToggleOutcome, error) {
	exists, err := s.db.PostExists(postID)
	if err != nil {
		return nil, 0, fmt.Errorf("resolving post: %w", err)
	}
	if !exists {
		return nil, 0, model.ErrorPostNotFound
	}

	outcome, err := s.db.ToggleLike(actor, postID)
	if err != nil {
		return nil, 0, fmt.Errorf("toggling like: %w", err)
	}

	view, err := s.db.PostView(postID, actor)
	if err != nil {
		return nil, 0, fmt.Errorf("fetching post: %w", err)
	}
	return view, outcome, nil
}
