package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Alexandra151/LibrarySystem/internal/domain"
	"github.com/Alexandra151/LibrarySystem/internal/store"
)

// loanColumns is the ordered list of columns selected in loan queries.
// Must match the scan order in scanLoan.
const loanColumns = `id, book_id, loan_date, due_date, return_date`

// scanLoan scans a sql.Row (or sql.Rows via its Scan method) into a domain.Loan.
func scanLoan(scanner interface{ Scan(dest ...any) error }) (*domain.Loan, error) {
	var (
		l          domain.Loan
		loanDate   string
		dueDate    string
		returnDate sql.NullString
	)

	if err := scanner.Scan(&l.ID, &l.BookID, &loanDate, &dueDate, &returnDate); err != nil {
		return nil, err
	}

	var err error
	if l.LoanDate, err = parseTime(loanDate); err != nil {
		return nil, err
	}
	if l.DueDate, err = parseTime(dueDate); err != nil {
		return nil, err
	}
	if l.ReturnDate, err = parseNullableTime(returnDate); err != nil {
		return nil, err
	}
	return &l, nil
}

// Checkout atomically decrements a book's available copies and creates an
// open loan. The decrement is guarded by copies_available > 0, so
// concurrent checkouts on the same book can never drive availability
// below zero or create more open loans than copies_total.
//
// Returns store.ErrNotFound when the book does not exist and
// store.ErrNoCopies when every copy is out.
func (s *Store) Checkout(ctx context.Context, bookID int64, loanDate, dueDate time.Time) (*domain.Loan, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	// The guarded UPDATE is the first statement, so the transaction takes
	// the write lock immediately and there is no read-to-write upgrade race.
	res, err := tx.ExecContext(ctx,
		`UPDATE books SET copies_available = copies_available - 1
		  WHERE id = ? AND copies_available > 0`, bookID)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM books WHERE id = ?`, bookID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, store.ErrNoCopies
	}

	res, err = tx.ExecContext(ctx,
		`INSERT INTO loans (book_id, loan_date, due_date, return_date)
		 VALUES (?, ?, ?, NULL)`,
		bookID, formatTime(loanDate), formatTime(dueDate))
	if err != nil {
		return nil, err
	}
	loanID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &domain.Loan{
		ID:       loanID,
		BookID:   bookID,
		LoanDate: loanDate.UTC(),
		DueDate:  dueDate.UTC(),
	}, nil
}

// Return atomically closes an open loan and restores one copy to the
// referenced book, clamped so availability never exceeds copies_total.
// If the book has been deleted out from under the loan, the loan is still
// closed and no inventory adjustment happens.
//
// Returns store.ErrNotFound when the loan does not exist and
// store.ErrAlreadyReturned when it is already closed.
func (s *Store) Return(ctx context.Context, loanID int64, returnDate time.Time) (*domain.Loan, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	// Guarded close first: only an open loan transitions, and the write
	// lock is taken before anything is read.
	res, err := tx.ExecContext(ctx,
		`UPDATE loans SET return_date = ? WHERE id = ? AND return_date IS NULL`,
		formatTime(returnDate), loanID)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM loans WHERE id = ?`, loanID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, store.ErrAlreadyReturned
	}

	row := tx.QueryRowContext(ctx,
		`SELECT `+loanColumns+` FROM loans WHERE id = ?`, loanID)
	loan, err := scanLoan(row)
	if err != nil {
		return nil, err
	}

	// Zero rows here means the book is gone; the loan still closes.
	if _, err := tx.ExecContext(ctx,
		`UPDATE books SET copies_available = MIN(copies_available + 1, copies_total)
		  WHERE id = ?`, loan.BookID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return loan, nil
}

// GetLoan retrieves a loan by ID.
// Returns store.ErrNotFound if the loan does not exist.
func (s *Store) GetLoan(ctx context.Context, id int64) (*domain.Loan, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+loanColumns+` FROM loans WHERE id = ?`, id)

	l, err := scanLoan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListLoans returns loans ordered newest first (loan_date, then id, both
// descending for a deterministic order). With activeOnly, closed loans
// are filtered out.
func (s *Store) ListLoans(ctx context.Context, activeOnly bool) ([]*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans`
	if activeOnly {
		query += ` WHERE return_date IS NULL`
	}
	query += ` ORDER BY loan_date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}
