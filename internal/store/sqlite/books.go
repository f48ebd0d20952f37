package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Alexandra151/LibrarySystem/internal/domain"
	"github.com/Alexandra151/LibrarySystem/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, title, author_id, copies_total, copies_available`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book
	err := scanner.Scan(&b.ID, &b.Title, &b.AuthorID, &b.CopiesTotal, &b.CopiesAvailable)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// isForeignKeyViolation reports whether err is a FOREIGN KEY constraint failure.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// CreateBook inserts a new book and assigns its ID.
// Returns store.ErrAuthorMissing when the author reference does not resolve.
func (s *Store) CreateBook(ctx context.Context, b *domain.Book) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO books (title, author_id, copies_total, copies_available)
		VALUES (?, ?, ?, ?)`,
		b.Title, b.AuthorID, b.CopiesTotal, b.CopiesAvailable)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrAuthorMissing
		}
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

// GetBook retrieves a book by ID.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBooks returns all books matching the filter, ordered by title.
// The title filter is a case-insensitive substring match.
func (s *Store) ListBooks(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books`
	var args []any
	if filter.Title != "" {
		query += ` WHERE title LIKE '%' || ? || '%'`
		args = append(args, strings.TrimSpace(filter.Title))
	}
	query += ` ORDER BY title COLLATE NOCASE ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
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

// UpdateBook performs a full row update on an existing book.
// Returns store.ErrNotFound if absent, store.ErrAuthorMissing when the new
// author reference does not resolve.
func (s *Store) UpdateBook(ctx context.Context, b *domain.Book) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE books SET
			title = ?,
			author_id = ?,
			copies_total = ?,
			copies_available = ?
		WHERE id = ?`,
		b.Title, b.AuthorID, b.CopiesTotal, b.CopiesAvailable, b.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrAuthorMissing
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

// DeleteBook removes a book unless an open loan still references it.
// The guard is part of the DELETE statement so a concurrent checkout
// cannot slip between check and delete.
func (s *Store) DeleteBook(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM books WHERE id = ?
		   AND NOT EXISTS (SELECT 1 FROM loans WHERE book_id = ? AND return_date IS NULL)`,
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

	var exists int
	err = s.db.QueryRowContext(ctx,
		`SELECT 1 FROM books WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}
	return store.ErrBookHasOpenLoans
}
