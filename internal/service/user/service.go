package user

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"uk.co.dudmesh.waggle/internal/model"
)

type Database interface {
	CreateUser(user *model.User) error
	UserByID(id model.UserID) (*model.User, error)
	UserByUsername(username string) (*model.User, error)
	TouchLastLogin(id model.UserID) error
	Followers(userID model.UserID) ([]model.UserSummary, error)
	Following(userID model.UserID) ([]model.UserSummary, error)
	ListPostsByAuthor(author, viewer model.UserID) ([]model.PostView, error)
}

type service struct {
	db Database
}

func New(db Database) *service {
	return &service{db}
}

func (s *service) Register(params *model.CreateUserParams) (*model.User, error) {
	passwordBytes, err := bcrypt.GenerateFromPassword([]byte(params.Password), 10)
	if err != nil {
		return nil, fmt.Errorf("generating encoded password: %w", err)
	}

	user := &model.User{
		ID:             model.UserID(model.CreateID()),
		CreatedAt:      time.Now().UTC(),
		Status:         model.UserStatusActive,
		Username:       params.Username,
		Email:          params.Email,
		Name:           params.Name,
		Bio:            params.Bio,
		ProfilePicture: params.ProfilePicture,
		Password:       string(passwordBytes),
	}

	// the unique indexes on Username and Email are the real guard, a
	// concurrent duplicate registration loses there
	if err := s.db.CreateUser(user); err != nil {
		if errors.Is(err, model.ErrorDuplicateUser) {
			return nil, model.ErrorDuplicateUser
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// Login resolves credentials to a user. Unknown usernames and wrong passwords
// return the same error.
func (s *service) Login(params *model.LoginParams) (*model.User, error) {
	user, err := s.db.UserByUsername(params.Username)
	if err != nil {
		if errors.Is(err, model.ErrorUserNotFound) {
			return nil, model.ErrorInvalidUsernameOrPassword
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(params.Password)); err != nil {
		return nil, model.ErrorInvalidUsernameOrPassword
	}

	if err := s.db.TouchLastLogin(user.ID); err != nil {
		return nil, fmt.Errorf("recording login: %w", err)
	}

	return user, nil
}

func (s *service) Fetch(userID model.UserID) (*model.User, error) {
	user, err := s.db.UserByID(userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Profile aggregates the public view of a user: record, follower and
// following lists, and their posts newest first. The viewer personalises the
// like state on each post and may be empty for anonymous requests.
func (s *service) Profile(username string, viewer model.UserID) (*model.Profile, error) {
	user, err := s.db.UserByUsername(username)
	if err != nil {
		return nil, err
	}

	followers, err := s.db.Followers(user.ID)
	if err != nil {
		return nil, fmt.Errorf("listing followers: %w", err)
	}

	following, err := s.db.Following(user.ID)
	if err != nil {
		return nil, fmt.Errorf("listing following: %w", err)
	}

	posts, err := s.db.ListPostsByAuthor(user.ID, viewer)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	return &model.Profile{
		Username:       user.Username,
		Name:           user.Name,
		Bio:            user.Bio,
		ProfilePicture: user.ProfilePicture,
		Followers:      followers,
		Following:      following,
		Posts:          posts,
	}, nil
}
