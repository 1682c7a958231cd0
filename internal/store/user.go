package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"uk.co.dudmesh.waggle/internal/model"
)

func (s *Store) CreateUser(user *model.User) error {
	res, err := s.db.NamedExec(`insert into users
		(ID, CreatedAt, Status, Username, Email, Name, Bio, ProfilePicture, Password)
		values(:ID, :CreatedAt, :Status, :Username, :Email, :Name, :Bio, :ProfilePicture, :Password)`, user)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrorDuplicateUser
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	if rows, err := res.RowsAffected(); rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	} else if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	return nil
}

func (s *Store) UserByID(id model.UserID) (*model.User, error) {
	user := &model.User{}
	err := s.db.Get(user, `select * from users where ID = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorUserNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}

func (s *Store) UserByUsername(username string) (*model.User, error) {
	user := &model.User{}
	err := s.db.Get(user, `select * from users where Username = ?`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorUserNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}

func (s *Store) UserExists(id model.UserID) (bool, error) {
	var exists bool
	err := s.db.Get(&exists, `select exists(select 1 from users where ID = ?)`, id)
	if err != nil {
		return false, fmt.Errorf("checking user exists: %w", err)
	}
	return exists, nil
}

func (s *Store) TouchLastLogin(id model.UserID) error {
	_, err := s.db.Exec(`update users set LastLoggedInAt = ? where ID = ?`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}
	return nil
}
