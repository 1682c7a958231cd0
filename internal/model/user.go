package model

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"
)

type UserID string

type UserStatus int

const (
	UserStatusPending UserStatus = iota
	UserStatusActive
	UserStatusLocked
	UserStatusDeleted
)

// usernames start with a lowercase letter, then lowercase letters, digits,
// underscores and dots
var usernameRegex = regexp.MustCompile(`^[a-z][a-z0-9._]*$`)

type User struct {
	ID             UserID     `db:"ID" json:"id"`
	CreatedAt      time.Time  `db:"CreatedAt" json:"createdAt"`
	UpdatedAt      *time.Time `db:"UpdatedAt" json:"updatedAt"`
	LastLoggedInAt *time.Time `db:"LastLoggedInAt" json:"-"`
	Status         UserStatus `db:"Status" json:"-"`
	Username       string     `db:"Username" json:"username"`
	Email          string     `db:"Email" json:"email"`
	Name           string     `db:"Name" json:"name"`
	Bio            string     `db:"Bio" json:"bio"`
	ProfilePicture string     `db:"ProfilePicture" json:"profilePicture"`
	Password       string     `db:"Password" json:"-"`
}

// Identity is the set of claims carried by a token. It is what the auth
// middleware hands to downstream handlers.
type Identity struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserSummary is the public shape of a user embedded in posts, comments and
// follower lists.
type UserSummary struct {
	ID             UserID `db:"ID" json:"id"`
	Username       string `db:"Username" json:"username"`
	Name           string `db:"Name" json:"name"`
	ProfilePicture string `db:"ProfilePicture" json:"profilePicture"`
}

type CreateUserParams struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profilePicture"`
}

func (p *CreateUserParams) Validate() error {
	p.Username = strings.TrimSpace(p.Username)
	if len(p.Username) < 4 || len(p.Username) > 20 {
		return fmt.Errorf("%w: username must be between 4 and 20 characters", ErrorValidation)
	}
	if !usernameRegex.MatchString(p.Username) {
		return fmt.Errorf("%w: username must start with a lowercase letter and contain only lowercase letters, numbers, underscores and dots", ErrorValidation)
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrorValidation)
	}
	p.Email = strings.ToLower(p.Email)
	if err := validatePassword(p.Password); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(p.Name)
	if len(p.Name) < 1 || len(p.Name) > 100 {
		return fmt.Errorf("%w: name must be between 1 and 100 characters", ErrorValidation)
	}
	p.Bio = strings.TrimSpace(p.Bio)
	if len(p.Bio) > 500 {
		return fmt.Errorf("%w: bio must not exceed 500 characters", ErrorValidation)
	}
	if p.ProfilePicture != "" {
		u, err := url.Parse(p.ProfilePicture)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: profile picture must be a valid URL", ErrorValidation)
		}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", ErrorValidation)
	}
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return fmt.Errorf("%w: password must contain an uppercase letter, a lowercase letter, a number and a special character", ErrorValidation)
	}
	return nil
}

type LoginParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (p *LoginParams) Validate() error {
	if strings.TrimSpace(p.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrorValidation)
	}
	if p.Password == "" {
		return fmt.Errorf("%w: password is required", ErrorValidation)
	}
	return nil
}

// Profile is the aggregate returned for GET /user/:username.
type Profile struct {
	Username       string        `json:"username"`
	Name           string        `json:"name"`
	Bio            string        `json:"bio"`
	ProfilePicture string        `json:"profilePicture"`
	Followers      []UserSummary `json:"followers"`
	Following      []UserSummary `json:"following"`
	Posts          []PostView    `json:"posts"`
}
