package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"uk.co.dudmesh.waggle/internal/model"
)

type postRow struct {
	ID                   model.PostID `db:"ID"`
	CreatedAt            time.Time    `db:"CreatedAt"`
	UpdatedAt            *time.Time   `db:"UpdatedAt"`
	Content              string       `db:"Content"`
	Image                string       `db:"Image"`
	AuthorID             model.UserID `db:"AuthorID"`
	AuthorUsername       string       `db:"AuthorUsername"`
	AuthorName           string       `db:"AuthorName"`
	AuthorProfilePicture string       `db:"AuthorProfilePicture"`
	LikesCount           int          `db:"LikesCount"`
	IsLikedByUser        bool         `db:"IsLikedByUser"`
}

func (r *postRow) toView() model.PostView {
	return model.PostView{
		ID:      r.ID,
		Content: r.Content,
		Image:   r.Image,
		Author: model.UserSummary{
			ID:             r.AuthorID,
			Username:       r.AuthorUsername,
			Name:           r.AuthorName,
			ProfilePicture: r.AuthorProfilePicture,
		},
		LikesCount:    r.LikesCount,
		IsLikedByUser: r.IsLikedByUser,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// viewer personalises IsLikedByUser; an empty viewer matches no likes
const postViewQuery = `select
		p.ID, p.CreatedAt, p.UpdatedAt, p.Content, p.Image,
		u.ID as AuthorID, u.Username as AuthorUsername, u.Name as AuthorName,
		u.ProfilePicture as AuthorProfilePicture,
		(select count(*) from likes l where l.PostID = p.ID) as LikesCount,
		exists(select 1 from likes l where l.PostID = p.ID and l.UserID = ?) as IsLikedByUser
	from posts p
	join users u on u.ID = p.AuthorID`

func (s *Store) CreatePost(post *model.Post) error {
	res, err := s.db.NamedExec(`insert into posts
		(ID, CreatedAt, AuthorID, Content, Image)
		values(:ID, :CreatedAt, :AuthorID, :Content, :Image)`, post)
	if err != nil {
		return fmt.Errorf("inserting post: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	return nil
}

func (s *Store) PostView(id model.PostID, viewer model.UserID) (*model.PostView, error) {
	row := postRow{}
	err := s.db.Get(&row, postViewQuery+` where p.ID = ?`, viewer, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorPostNotFound
		}
		return nil, fmt.Errorf("fetching post: %w", err)
	}
	view := row.toView()
	return &view, nil
}

func (s *Store) PostExists(id model.PostID) (bool, error) {
	var exists bool
	err := s.db.Get(&exists, `select exists(select 1 from posts where ID = ?)`, id)
	if err != nil {
		return false, fmt.Errorf("checking post exists: %w", err)
	}
	return exists, nil
}

func (s *Store) ListPosts(viewer model.UserID, limit, offset int) ([]model.PostView, error) {
	rows := []postRow{}
	err := s.db.Select(&rows, postViewQuery+` order by p.CreatedAt desc, p.ID limit ? offset ?`,
		viewer, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	views := make([]model.PostView, 0, len(rows))
	for i := range rows {
		views = append(views, rows[i].toView())
	}
	return views, nil
}

func (s *Store) ListPostsByAuthor(author model.UserID, viewer model.UserID) ([]model.PostView, error) {
	rows := []postRow{}
	err := s.db.Select(&rows, postViewQuery+` where p.AuthorID = ? order by p.CreatedAt desc, p.ID`,
		viewer, author)
	if err != nil {
		return nil, fmt.Errorf("listing posts by author: %w", err)
	}
	views := make([]model.PostView, 0, len(rows))
	for i := range rows {
		views = append(views, rows[i].toView())
	}
	return views, nil
}

func (s *Store) CountPosts() (int, error) {
	var total int
	err := s.db.Get(&total, `select count(*) from posts`)
	if err != nil {
		return 0, fmt.Errorf("counting posts: %w", err)
	}
	return total, nil
}
