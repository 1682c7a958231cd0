package model

import (
	"fmt"
	"strings"
	"time"
)

type PostID string
type CommentID string

type Post struct {
	ID        PostID     `db:"ID" json:"id"`
	CreatedAt time.Time  `db:"CreatedAt" json:"createdAt"`
	UpdatedAt *time.Time `db:"UpdatedAt" json:"updatedAt"`
	AuthorID  UserID     `db:"AuthorID" json:"authorId"`
	Content   string     `db:"Content" json:"content"`
	Image     string     `db:"Image" json:"image"`
}

// PostView is a post with its author resolved and like state attached, the
// shape every post endpoint responds with.
type PostView struct {
	ID            PostID      `json:"id"`
	Content       string      `json:"content"`
	Image         string      `json:"image,omitempty"`
	Author        UserSummary `json:"author"`
	LikesCount    int         `json:"likesCount"`
	IsLikedByUser bool        `json:"isLikedByUser"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     *time.Time  `json:"updatedAt"`
}

type CreatePostParams struct {
	AuthorID UserID `json:"authorId"`
	Content  string `json:"content"`
	Image    string `json:"image"`
}

func (p *CreatePostParams) Validate() error {
	if p.AuthorID == "" {
		return fmt.Errorf("%w: authorId is required", ErrorValidation)
	}
	p.Content = strings.TrimSpace(p.Content)
	if p.Content == "" {
		return fmt.Errorf("%w: content is required", ErrorValidation)
	}
	return nil
}

type Comment struct {
	ID        CommentID  `db:"ID" json:"id"`
	CreatedAt time.Time  `db:"CreatedAt" json:"createdAt"`
	UpdatedAt *time.Time `db:"UpdatedAt" json:"updatedAt"`
	PostID    PostID     `db:"PostID" json:"postId"`
	AuthorID  UserID     `db:"AuthorID" json:"authorId"`
	Content   string     `db:"Content" json:"content"`
}

type CommentView struct {
	ID        CommentID   `json:"id"`
	PostID    PostID      `json:"postId"`
	Content   string      `json:"content"`
	Author    UserSummary `json:"author"`
	CreatedAt time.Time   `json:"createdAt"`
}

type CreateCommentParams struct {
	AuthorID UserID `json:"authorId"`
	PostID   PostID `json:"postId"`
	Content  string `json:"content"`
}

func (p *CreateCommentParams) Validate() error {
	if p.AuthorID == "" {
		return fmt.Errorf("%w: authorId is required", ErrorValidation)
	}
	if p.PostID == "" {
		return fmt.Errorf("%w: postId is required", ErrorValidation)
	}
	p.Content = strings.TrimSpace(p.Content)
	if p.Content == "" {
		return fmt.Errorf("%w: content is required", ErrorValidation)
	}
	return nil
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
