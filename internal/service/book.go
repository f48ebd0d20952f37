package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Alexandra151/LibrarySystem/internal/domain"
	domainerrors "github.com/Alexandra151/LibrarySystem/internal/errors"
	"github.com/Alexandra151/LibrarySystem/internal/store"
)

// BookService orchestrates book catalog operations.
type BookService struct {
	store  store.Store
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store store.Store, logger *slog.Logger) *BookService {
	return &BookService{
		store:  store,
		logger: logger,
	}
}

// CreateBookRequest contains the data for a new book.
// Copy counts outside their legal ranges are clamped, not rejected.
type CreateBookRequest struct {
	Title           string `json:"title" validate:"required,max=512"`
	AuthorID        int64  `json:"authorId" validate:"required,gt=0"`
	CopiesTotal     int    `json:"copiesTotal"`
	CopiesAvailable int    `json:"copiesAvailable"`
}

// UpdateBookRequest contains the replacement data for a book.
type UpdateBookRequest struct {
	Title           string `json:"title" validate:"required,max=512"`
	AuthorID        int64  `json:"authorId" validate:"required,gt=0"`
	CopiesTotal     int    `json:"copiesTotal"`
	CopiesAvailable int    `json:"copiesAvailable"`
}

// ListBooksParams narrows book listings.
type ListBooksParams struct {
	Title string
}

// CreateBook creates a new book. The referenced author must exist;
// copy counts are silently clamped into their legal ranges.
func (s *BookService) CreateBook(ctx context.Context, req CreateBookRequest) (*domain.Book, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	book := &domain.Book{
		Title:           req.Title,
		AuthorID:        req.AuthorID,
		CopiesTotal:     req.CopiesTotal,
		CopiesAvailable: req.CopiesAvailable,
	}
	book.ClampCopies()

	if err := s.store.CreateBook(ctx, book); err != nil {
		if errors.Is(err, store.ErrAuthorMissing) {
			return nil, domainerrors.Validationf("author %d does not exist", req.AuthorID)
		}
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.logger.Info("book created",
		"book_id", book.ID,
		"title", book.Title,
		"author_id", book.AuthorID,
		"copies_total", book.CopiesTotal,
	)
	return book, nil
}

// GetBook retrieves a book by ID.
func (s *BookService) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.NotFoundf("book %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// ListBooks returns books matching the optional case-insensitive title
// filter.
func (s *BookService) ListBooks(ctx context.Context, params ListBooksParams) ([]*domain.Book, error) {
	books, err := s.store.ListBooks(ctx, store.BookFilter{Title: strings.TrimSpace(params.Title)})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	if books == nil {
		books = []*domain.Book{}
	}
	return books, nil
}

// UpdateBook replaces a book's data. Copy counts are clamped the same
// way as on create.
func (s *BookService) UpdateBook(ctx context.Context, id int64, req UpdateBookRequest) (*domain.Book, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	book := &domain.Book{
		ID:              id,
		Title:           req.Title,
		AuthorID:        req.AuthorID,
		CopiesTotal:     req.CopiesTotal,
		CopiesAvailable: req.CopiesAvailable,
	}
	book.ClampCopies()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFoundf("book %d not found", id)
		case errors.Is(err, store.ErrAuthorMissing):
			return nil, domainerrors.Validationf("author %d does not exist", req.AuthorID)
		}
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.logger.Info("book updated", "book_id", id, "title", book.Title)
	return book, nil
}

// DeleteBook removes a book. Deletion is blocked while the book has
// open loans; closed loans are kept and do not block.
func (s *BookService) DeleteBook(ctx context.Context, id int64) error {
	if err := s.store.DeleteBook(ctx, id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domainerrors.NotFoundf("book %d not found", id)
		case errors.Is(err, store.ErrBookHasOpenLoans):
			return domainerrors.Blocked("book has open loans and cannot be deleted")
		}
		return fmt.Errorf("delete book: %w", err)
	}

	s.logger.Info("book deleted", "book_id", id)
	return nil
}
