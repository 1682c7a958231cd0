package store

import (
	"fmt"
	"time"

	"uk.co.dudmesh.waggle/internal/model"
)

// toggleEdge flips a row in a two-column edge table inside a single write
// transaction. Delete-first: one row gone means the edge was present. Zero
// rows means it was absent, so insert; a unique violation on that insert
// means a concurrent writer created it between our delete and insert, which
// is reported as already-present rather than an error.
func (s *Store) toggleEdge(table, leftCol, rightCol string, left, right string) (model.ToggleOutcome, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		fmt.Sprintf(`delete from %s where %s = ? and %s = ?`, table, leftCol, rightCol),
		left, right)
	if err != nil {
		return 0, fmt.Errorf("deleting edge: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("getting rows affected: %w", err)
	}
	if rows > 0 {
		if err := tx.Commit(); err != nil {
			return 0, fmt.Errorf("committing delete: %w", err)
		}
		return model.ToggleRemoved, nil
	}

	_, err = tx.Exec(
		fmt.Sprintf(`insert into %s (%s, %s, CreatedAt) values (?, ?, ?)`, table, leftCol, rightCol),
		left, right, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return model.ToggleAlreadyPresent, nil
		}
		return 0, fmt.Errorf("inserting edge: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing insert: %w", err)
	}
	return model.ToggleCreated, nil
}

func (s *Store) ToggleFollow(follower, followee model.UserID) (model.ToggleOutcome, error) {
	return s.toggleEdge("follows", "FollowerID", "FolloweeID", string(follower), string(followee))
}

func (s *Store) ToggleLike(user model.UserID, post model.PostID) (model.ToggleOutcome, error) {
	return s.toggleEdge("likes", "UserID", "PostID", string(user), string(post))
}

func (s *Store) IsFollowing(follower, followee model.UserID) (bool, error) {
	var exists bool
	err := s.db.Get(&exists,
		`select exists(select 1 from follows where FollowerID = ? and FolloweeID = ?)`,
		follower, followee)
	if err != nil {
		return false, fmt.Errorf("checking follow edge: %w", err)
	}
	return exists, nil
}

func (s *Store) Followers(userID model.UserID) ([]model.UserSummary, error) {
	summaries := []model.UserSummary{}
	err := s.db.Select(&summaries, `select u.ID, u.Username, u.Name, u.ProfilePicture
		from follows f
		join users u on u.ID = f.FollowerID
		where f.FolloweeID = ?
		order by f.CreatedAt desc`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing followers: %w", err)
	}
	return summaries, nil
}

func (s *Store) Following(userID model.UserID) ([]model.UserSummary, error) {
	summaries := []model.UserSummary{}
	err := s.db.Select(&summaries, `select u.ID, u.Username, u.Name, u.ProfilePicture
		from follows f
		join users u on u.ID = f.FolloweeID
		where f.FollowerID = ?
		order by f.CreatedAt desc`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing following: %w", err)
	}
	return summaries, nil
}

func (s *Store) LikeCount(postID model.PostID) (int, error) {
	var count int
	err := s.db.Get(&count, `select count(*) from likes where PostID = ?`, postID)
	if err != nil {
		return 0, fmt.Errorf("counting likes: %w", err)
	}
	return count, nil
}
