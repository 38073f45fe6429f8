package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account. Terminal profiles have an empty PasswordHash and
// cannot log in over HTTP.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateUser inserts a new account.
func (s *Store) CreateUser(ctx context.Context, name, username, passwordHash string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("storage: username is required")
	}
	if name = strings.TrimSpace(name); name == "" {
		name = username
	}

	u := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, username, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Username, u.PasswordHash, u.CreatedAt.Format(timeLayout),
	)
	if isUniqueViolation(err) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot create user: %w", err)
	}
	return u, nil
}

// UserByUsername looks a user up by case-insensitive username.
func (s *Store) UserByUsername(ctx context.Context, username string) (*User, error) {
	return s.queryUser(ctx, "username = ?", strings.TrimSpace(username))
}

// UserByID looks a user up by ID.
func (s *Store) UserByID(ctx context.Context, id string) (*User, error) {
	return s.queryUser(ctx, "id = ?", id)
}

func (s *Store) queryUser(ctx context.Context, where string, arg any) (*User, error) {
	var u User
	var createdAt any
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, username, password_hash, created_at FROM users WHERE `+where,
		arg,
	).Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query user: %w", err)
	}
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}

// EnsureLocalUser returns the profile for a terminal or SSH player, creating
// it on first use. Names that belong to a password account return
// ErrNotLocalProfile.
func (s *Store) EnsureLocalUser(ctx context.Context, username string) (*User, error) {
	u, err := s.UserByUsername(ctx, username)
	if err == nil {
		return localOnly(u)
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	u, err = s.CreateUser(ctx, username, username, "")
	if errors.Is(err, ErrUsernameTaken) {
		// Lost a race with another session or a signup.
		if u, err = s.UserByUsername(ctx, username); err != nil {
			return nil, err
		}
		return localOnly(u)
	}
	return u, err
}

func localOnly(u *User) (*User, error) {
	if u.PasswordHash != "" {
		return nil, fmt.Errorf("%w: %q", ErrNotLocalProfile, u.Username)
	}
	return u, nil
}
