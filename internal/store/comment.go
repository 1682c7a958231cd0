package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"uk.co.dudmesh.waggle/internal/model"
)

type commentRow struct {
	ID                   model.CommentID `db:"ID"`
	CreatedAt            time.Time       `db:"CreatedAt"`
	PostID               model.PostID    `db:"PostID"`
	Content              string          `db:"Content"`
	AuthorID             model.UserID    `db:"AuthorID"`
	AuthorUsername       string          `db:"AuthorUsername"`
	AuthorName           string          `db:"AuthorName"`
	AuthorProfilePicture string          `db:"AuthorProfilePicture"`
}

func (r *commentRow) toView() model.CommentView {
	return model.CommentView{
		ID:      r.ID,
		PostID:  r.PostID,
		Content: r.Content,
		Author: model.UserSummary{
			ID:             r.AuthorID,
			Username:       r.AuthorUsername,
			Name:           r.AuthorName,
			ProfilePicture: r.AuthorProfilePicture,
		},
		CreatedAt: r.CreatedAt,
	}
}

func (s *Store) CreateComment(comment *model.Comment) error {
	res, err := s.db.NamedExec(`insert into comments
		(ID, CreatedAt, PostID, AuthorID, Content)
		values(:ID, :CreatedAt, :PostID, :AuthorID, :Content)`, comment)
	if err != nil {
		return fmt.Errorf("inserting comment: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	return nil
}

func (s *Store) CommentView(id model.CommentID) (*model.CommentView, error) {
	row := commentRow{}
	err := s.db.Get(&row, `select
			c.ID, c.CreatedAt, c.PostID, c.Content,
			u.ID as AuthorID, u.Username as AuthorUsername, u.Name as AuthorName,
			u.ProfilePicture as AuthorProfilePicture
		from comments c
		join users u on u.ID = c.AuthorID
		where c.ID = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorCommentNotFound
		}
		return nil, fmt.Errorf("fetching comment: %w", err)
	}
	view := row.toView()
	return &view, nil
}

func (s *Store) ListCommentsByPost(postID model.PostID) ([]model.CommentView, error) {
	rows := []commentRow{}
	err := s.db.Select(&rows, `select
			c.ID, c.CreatedAt, c.PostID, c.Content,
			u.ID as AuthorID, u.Username as AuthorUsername, u.Name as AuthorName,
			u.ProfilePicture as AuthorProfilePicture
		from comments c
		join users u on u.ID = c.AuthorID
		where c.PostID = ?
		order by c.CreatedAt desc, c.ID`, postID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	views := make([]model.CommentView, 0, len(rows))
	for i := range rows {
		views = append(views, rows[i].toView())
	}
	return views, nil
}
