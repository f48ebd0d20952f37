// Package store defines the persistence interface consumed by the services
// and the sentinel errors implementations report.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/Alexandra151/LibrarySystem/internal/domain"
)

// Sentinel errors reported by Store implementations. Services translate
// these into user-facing domain errors.
var (
	ErrNotFound = errors.New("store: not found")
	// ErrAlreadyExists is returned when a unique value (author name,
	// username) is already taken.
	ErrAlreadyExists = errors.New("store: already exists")
	// ErrNoCopies is returned by Checkout when the book has no available copies.
	ErrNoCopies = errors.New("store: no copies available")
	// ErrAlreadyReturned is returned by Return when the loan is closed.
	ErrAlreadyReturned = errors.New("store: loan already returned")
	// ErrAuthorHasBooks blocks author deletion while books reference the author.
	ErrAuthorHasBooks = errors.New("store: author has books")
	// ErrBookHasOpenLoans blocks book deletion while open loans reference the book.
	ErrBookHasOpenLoans = errors.New("store: book has open loans")
	// ErrAuthorMissing is returned when a book references a nonexistent author.
	ErrAuthorMissing = errors.New("store: author does not exist")
)

// AuthorFilter narrows and pages author listings.
type AuthorFilter struct {
	// Name filters by case-insensitive substring match when non-empty.
	Name     string
	Page     int
	PageSize int
}

// Validate normalizes paging values into their allowed ranges.
func (f *AuthorFilter) Validate() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 200 {
		f.PageSize = 50
	}
}

// BookFilter narrows book listings.
type BookFilter struct {
	// Title filters by case-insensitive substring match when non-empty.
	Title string
}

// Store is the catalog persistence contract.
//
// Implementations own durability and the serialization discipline for
// copy-count mutations: Checkout and Return must be atomic with respect to
// concurrent operations on the same book. Reads are plain snapshot reads.
type Store interface {
	// Authors.
	CreateAuthor(ctx context.Context, a *domain.Author) error
	GetAuthor(ctx context.Context, id int64) (*domain.Author, error)
	ListAuthors(ctx context.Context, filter AuthorFilter) (items []*domain.Author, total int, err error)
	UpdateAuthor(ctx context.Context, a *domain.Author) error
	DeleteAuthor(ctx context.Context, id int64) error
	ListBooksByAuthor(ctx context.Context, authorID int64) ([]*domain.Book, error)

	// Books.
	CreateBook(ctx context.Context, b *domain.Book) error
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	ListBooks(ctx context.Context, filter BookFilter) ([]*domain.Book, error)
	UpdateBook(ctx context.Context, b *domain.Book) error
	DeleteBook(ctx context.Context, id int64) error

	// Loans. Checkout decrements availability and creates the loan in one
	// transaction; Return closes the loan and increments availability
	// (clamped at copies_total, tolerant of a deleted book).
	Checkout(ctx context.Context, bookID int64, loanDate, dueDate time.Time) (*domain.Loan, error)
	Return(ctx context.Context, loanID int64, returnDate time.Time) (*domain.Loan, error)
	GetLoan(ctx context.Context, id int64) (*domain.Loan, error)
	ListLoans(ctx context.Context, activeOnly bool) ([]*domain.Loan, error)

	// Users.
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CountUsers(ctx context.Context) (int, error)

	Close() error
}
