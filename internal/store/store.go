package store

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

type Config interface {
	DataDirectory() string
}

type Store struct {
	db *sqlx.DB
}

func New(config Config) (*Store, error) {
	dir := config.DataDirectory()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbName := path.Join(dir, "waggle.db")
	db, err := sqlx.Connect("sqlite3", "file:"+dbName+"?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := &Store{db}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	// uniqueness invariants live here: duplicate registrations and duplicate
	// edges are impossible regardless of what the application layer checks
	for _, ddl := range []string{
		`create table if not exists users(
			ID             text not null primary key,
			CreatedAt      DATETIME not null,
			UpdatedAt      DATETIME null,
			LastLoggedInAt DATETIME null,
			Status         tinyint not null default 0,
			Username       text not null unique,
			Email          text not null unique,
			Name           text not null,
			Bio            text not null default '',
			ProfilePicture text not null default '',
			Password       text not null
		)`,
		`create table if not exists posts(
			ID        text not null primary key,
			CreatedAt DATETIME not null,
			UpdatedAt DATETIME null,
			AuthorID  text not null references users(ID),
			Content   text not null,
			Image     text not null default ''
		)`,
		`create table if not exists comments(
			ID        text not null primary key,
			CreatedAt DATETIME not null,
			UpdatedAt DATETIME null,
			PostID    text not null references posts(ID),
			AuthorID  text not null references users(ID),
			Content   text not null
		)`,
		`create table if not exists follows(
			FollowerID text not null references users(ID),
			FolloweeID text not null references users(ID),
			CreatedAt  DATETIME not null,
			unique(FollowerID, FolloweeID)
		)`,
		`create table if not exists likes(
			UserID    text not null references users(ID),
			PostID    text not null references posts(ID),
			CreatedAt DATETIME not null,
			unique(UserID, PostID)
		)`,
	} {
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("executing ddl: %w", err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
