package post

import (
	"fmt"
	"time"

	"uk.co.dudmesh.waggle/internal/model"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Database interface {
	UserExists(id model.UserID) (bool, error)
	PostExists(id model.PostID) (bool, error)
	CreatePost(post *model.Post) error
	PostView(id model.PostID, viewer model.UserID) (*model.PostView, error)
	ListPosts(viewer model.UserID, limit, offset int) ([]model.PostView, error)
	CountPosts() (int, error)
	CreateComment(comment *model.Comment) error
	CommentView(id model.CommentID) (*model.CommentView, error)
	ListCommentsByPost(postID model.PostID) ([]model.CommentView, error)
}

type service struct {
	db Database
}

func New(db Database) *service {
	return &service{db}
}

func (s *service) Create(params *model.CreatePostParams) (*model.PostView, error) {
	exists, err := s.db.UserExists(params.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("resolving author: %w", err)
	}
	if !exists {
		return nil, model.ErrorUserNotFound
	}

	post := &model.Post{
		ID:        model.PostID(model.CreateID()),
		CreatedAt: time.Now().UTC(),
		AuthorID:  params.AuthorID,
		Content:   params.Content,
		Image:     params.Image,
	}
	if err := s.db.CreatePost(post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	view, err := s.db.PostView(post.ID, params.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("fetching created post: %w", err)
	}
	return view, nil
}

func (s *service) Fetch(postID model.PostID, viewer model.UserID) (*model.PostView, error) {
	view, err := s.db.PostView(postID, viewer)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) List(viewer model.UserID, page, limit int) ([]model.PostView, *model.Pagination, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	views, err := s.db.ListPosts(viewer, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, fmt.Errorf("listing posts: %w", err)
	}

	total, err := s.db.CountPosts()
	if err != nil {
		return nil, nil, fmt.Errorf("counting posts: %w", err)
	}

	pagination := &model.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: (total + limit - 1) / limit,
	}
	return views, pagination, nil
}

func (s *service) Comment(params *model.CreateCommentParams) (*model.CommentView, error) {
	exists, err := s.db.PostExists(params.PostID)
	if err != nil {
		return nil, fmt.Errorf("resolving post: %w", err)
	}
	if !exists {
		return nil, model.ErrorPostNotFound
	}

	exists, err = s.db.UserExists(params.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("resolving author: %w", err)
	}
	if !exists {
		return nil, model.ErrorUserNotFound
	}

	comment := &model.Comment{
		ID:        model.CommentID(model.CreateID()),
		CreatedAt: time.Now().UTC(),
		PostID:    params.PostID,
		AuthorID:  params.AuthorID,
		Content:   params.Content,
	}
	if err := s.db.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	view, err := s.db.CommentView(comment.ID)
	if err != nil {
		return nil, fmt.Errorf("fetching created comment: %w", err)
	}
	return view, nil
}

func (s *service) CommentsForPost(postID model.PostID) ([]model.CommentView, error) {
	exists, err := s.db.PostExists(postID)
	if err != nil {
		return nil, fmt.Errorf("resolving post: %w", err)
	}
	if !exists {
		return nil, model.ErrorPostNotFound
	}
	return s.db.ListCommentsByPost(postID)
}
