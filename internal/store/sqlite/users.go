package sqlite

import (
	"context"
	"database/sql"
	"encoding/json/v2"
	"errors"

	"github.com/Alexandra151/LibrarySystem/internal/domain"
	"github.com/Alexandra151/LibrarySystem/internal/normalize"
	"github.com/Alexandra151/LibrarySystem/internal/store"
)

// scanUser scans a user row including its roles JSON array.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var (
		u         domain.User
		rolesJSON string
	)
	if err := scanner.Scan(&u.ID, &u.Username, &u.PasswordHash, &rolesJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(rolesJSON), &u.Roles); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user and assigns its ID.
// Returns store.ErrAlreadyExists when the username is taken
// (case-insensitive).
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	rolesJSON, err := json.Marshal(u.Roles)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, username_folded, password_hash, roles)
		VALUES (?, ?, ?, ?)`,
		u.Username, normalize.FoldedName(u.Username), u.PasswordHash, string(rolesJSON))
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, roles FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByUsername retrieves a user by username, case-insensitively.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, roles FROM users WHERE username_folded = ?`,
		normalize.FoldedName(username))

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// CountUsers returns the total number of users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
