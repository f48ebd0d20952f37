package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Alexandra151/LibrarySystem/internal/domain"
	"github.com/Alexandra151/LibrarySystem/internal/normalize"
	"github.com/Alexandra151/LibrarySystem/internal/store"
)

// CreateAuthor inserts a new author and assigns its ID.
// Returns store.ErrAlreadyExists when the case-folded name is taken.
func (s *Store) CreateAuthor(ctx context.Context, a *domain.Author) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO authors (name, name_folded) VALUES (?, ?)`,
		a.Name, normalize.FoldedName(a.Name))
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
	a.ID = id
	return nil
}

// GetAuthor retrieves an author by ID.
// Returns store.ErrNotFound if the author does not exist.
func (s *Store) GetAuthor(ctx context.Context, id int64) (*domain.Author, error) {
	var a domain.Author
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM authors WHERE id = ?`, id).Scan(&a.ID, &a.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAuthors returns a page of authors ordered by name, plus the total
// count matching the filter. The name filter is a case-insensitive
// substring match.
func (s *Store) ListAuthors(ctx context.Context, filter store.AuthorFilter) ([]*domain.Author, int, error) {
	filter.Validate()

	where := ``
	var args []any
	if filter.Name != "" {
		where = ` WHERE name_folded LIKE '%' || ? || '%'`
		args = append(args, normalize.FoldedName(filter.Name))
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM authors`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name FROM authors` + where +
		` ORDER BY name COLLATE NOCASE ASC, id ASC LIMIT ? OFFSET ?`
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*domain.Author
	for rows.Next() {
		var a domain.Author
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, 0, err
		}
		items = append(items, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// UpdateAuthor renames an existing author.
// Returns store.ErrNotFound if absent, store.ErrAlreadyExists when the new
// name collides with another author.
func (s *Store) UpdateAuthor(ctx context.Context, a *domain.Author) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE authors SET name = ?, name_folded = ? WHERE id = ?`,
		a.Name, normalize.FoldedName(a.Name), a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteAuthor removes an author unless any book still references it.
// The referential guard is part of the DELETE statement, so the check and
// the delete cannot be interleaved by a concurrent book insert.
func (s *Store) DeleteAuthor(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM authors WHERE id = ?
		   AND NOT EXISTS (SELECT 1 FROM books WHERE author_id = ?)`,
		id, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	// Nothing deleted: distinguish missing author from a blocked delete.
	var exists int
	err = s.db.QueryRowContext(ctx,
		`SELECT 1 FROM authors WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}
	return store.ErrAuthorHasBooks
}

// ListBooksByAuthor returns all books referencing the given author,
// ordered by title.
func (s *Store) ListBooksByAuthor(ctx context.Context, authorID int64) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, author_id, copies_total, copies_available
		   FROM books WHERE author_id = ?
		  ORDER BY title COLLATE NOCASE ASC, id ASC`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}
