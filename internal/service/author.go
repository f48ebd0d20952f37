// Package service provides the business logic layer for the catalog,
// loans, and authentication.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Alexandra151/LibrarySystem/internal/domain"
	domainerrors "github.com/Alexandra151/LibrarySystem/internal/errors"
	"github.com/Alexandra151/LibrarySystem/internal/normalize"
	"github.com/Alexandra151/LibrarySystem/internal/store"
	"github.com/Alexandra151/LibrarySystem/internal/validation"
)

// validate is the shared request validator for the service layer.
var validate = validation.New()

// AuthorService orchestrates author catalog operations.
type AuthorService struct {
	store  store.Store
	logger *slog.Logger
}

// NewAuthorService creates a new author service.
func NewAuthorService(store store.Store, logger *slog.Logger) *AuthorService {
	return &AuthorService{
		store:  store,
		logger: logger,
	}
}

// CreateAuthorRequest contains the data for a new author.
type CreateAuthorRequest struct {
	Name string `json:"name" validate:"required,max=256"`
}

// UpdateAuthorRequest contains the replacement data for an author.
type UpdateAuthorRequest struct {
	Name string `json:"name" validate:"required,max=256"`
}

// ListAuthorsParams narrows and pages author listings.
type ListAuthorsParams struct {
	Name     string
	Page     int
	PageSize int
}

// AuthorPage is one page of authors along with the unpaged total.
type AuthorPage struct {
	Items []*domain.Author
	Total int
}

// CreateAuthor creates a new author. The name is whitespace-normalized
// before storage and must be unique ignoring case.
func (s *AuthorService) CreateAuthor(ctx context.Context, req CreateAuthorRequest) (*domain.Author, error) {
	req.Name = normalize.Name(req.Name)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	author := &domain.Author{Name: req.Name}
	if err := s.store.CreateAuthor(ctx, author); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflictf("author %q already exists", req.Name)
		}
		return nil, fmt.Errorf("create author: %w", err)
	}

	s.logger.Info("author created", "author_id", author.ID, "name", author.Name)
	return author, nil
}

// GetAuthor retrieves an author. With includeBooks, the author's books
// are attached to the result.
func (s *AuthorService) GetAuthor(ctx context.Context, id int64, includeBooks bool) (*domain.Author, error) {
	author, err := s.store.GetAuthor(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.NotFoundf("author %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}

	if includeBooks {
		books, err := s.store.ListBooksByAuthor(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("list author books: %w", err)
		}
		author.Books = books
	}
	return author, nil
}

// ListAuthors returns a page of authors matching the optional
// case-insensitive name filter, plus the total match count.
func (s *AuthorService) ListAuthors(ctx context.Context, params ListAuthorsParams) (*AuthorPage, error) {
	filter := store.AuthorFilter{
		Name:     normalize.Name(params.Name),
		Page:     params.Page,
		PageSize: params.PageSize,
	}
	filter.Validate()

	items, total, err := s.store.ListAuthors(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	if items == nil {
		items = []*domain.Author{}
	}
	return &AuthorPage{Items: items, Total: total}, nil
}

// UpdateAuthor replaces an author's name. The uniqueness rule ignores
// the author's own current name, so a case-only rename is allowed.
func (s *AuthorService) UpdateAuthor(ctx context.Context, id int64, req UpdateAuthorRequest) (*domain.Author, error) {
	req.Name = normalize.Name(req.Name)
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	author := &domain.Author{ID: id, Name: req.Name}
	if err := s.store.UpdateAuthor(ctx, author); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFoundf("author %d not found", id)
		case errors.Is(err, store.ErrAlreadyExists):
			return nil, domainerrors.Conflictf("author %q already exists", req.Name)
		}
		return nil, fmt.Errorf("update author: %w", err)
	}

	s.logger.Info("author updated", "author_id", id, "name", req.Name)
	return author, nil
}

// DeleteAuthor removes an author. Deletion is blocked while any book
// still references the author.
func (s *AuthorService) DeleteAuthor(ctx context.Context, id int64) error {
	if err := s.store.DeleteAuthor(ctx, id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domainerrors.NotFoundf("author %d not found", id)
		case errors.Is(err, store.ErrAuthorHasBooks):
			return domainerrors.Blocked("author has books and cannot be deleted")
		}
		return fmt.Errorf("delete author: %w", err)
	}

	s.logger.Info("author deleted", "author_id", id)
	return nil
}
