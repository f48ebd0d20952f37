package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/Alexandra151/LibrarySystem/internal/errors"
)

func TestCreateAuthorNormalizesName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author, err := env.authors.CreateAuthor(ctx, CreateAuthorRequest{Name: "  Eliza   Orzeszkowa  "})
	require.NoError(t, err)
	assert.Equal(t, "Eliza Orzeszkowa", author.Name)
	assert.NotZero(t, author.ID)
}

func TestCreateAuthorRejectsBlankName(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.authors.CreateAuthor(context.Background(), CreateAuthorRequest{Name: "   "})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCreateAuthorDuplicateIsConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.authors.CreateAuthor(ctx, CreateAuthorRequest{Name: "Wislawa Szymborska"})
	require.NoError(t, err)

	_, err = env.authors.CreateAuthor(ctx, CreateAuthorRequest{Name: "wislawa SZYMBORSKA"})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestGetAuthorIncludeBooks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	book := env.createBook(t, "Chlopi", 2, 2)

	author, err := env.authors.GetAuthor(ctx, book.AuthorID, false)
	require.NoError(t, err)
	assert.Nil(t, author.Books)

	author, err = env.authors.GetAuthor(ctx, book.AuthorID, true)
	require.NoError(t, err)
	require.Len(t, author.Books, 1)
	assert.Equal(t, "Chlopi", author.Books[0].Title)
}

func TestGetAuthorNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.authors.GetAuthor(context.Background(), 404, false)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUpdateAuthorConflictAndNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.authors.CreateAuthor(ctx, CreateAuthorRequest{Name: "Zofia Nalkowska"})
	require.NoError(t, err)
	second, err := env.authors.CreateAuthor(ctx, CreateAuthorRequest{Name: "Maria Dabrowska"})
	require.NoError(t, err)

	// Case-only self-rename is fine.
	updated, err := env.authors.UpdateAuthor(ctx, first.ID, UpdateAuthorRequest{Name: "ZOFIA NALKOWSKA"})
	require.NoError(t, err)
	assert.Equal(t, "ZOFIA NALKOWSKA", updated.Name)

	_, err = env.authors.UpdateAuthor(ctx, second.ID, UpdateAuthorRequest{Name: "zofia nalkowska"})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	_, err = env.authors.UpdateAuthor(ctx, 9999, UpdateAuthorRequest{Name: "Nobody"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDeleteAuthorBlocked(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	book := env.createBook(t, "Nad Niemnem", 1, 1)

	err := env.authors.DeleteAuthor(ctx, book.AuthorID)
	assert.ErrorIs(t, err, domainerrors.ErrBlocked)

	require.NoError(t, env.books.DeleteBook(ctx, book.ID))
	require.NoError(t, env.authors.DeleteAuthor(ctx, book.AuthorID))

	err = env.authors.DeleteAuthor(ctx, book.AuthorID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestListAuthorsPagingDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, name := range []string{"Adam Asnyk", "Jan Kochanowski", "Cyprian Norwid"} {
		_, err := env.authors.CreateAuthor(ctx, CreateAuthorRequest{Name: name})
		require.NoError(t, err)
	}

	// Out-of-range paging values fall back to defaults.
	page, err := env.authors.ListAuthors(ctx, ListAuthorsParams{Page: -3, PageSize: 100000})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Len(t, page.Items, 3)

	page, err = env.authors.ListAuthors(ctx, ListAuthorsParams{Name: "nor"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Cyprian Norwid", page.Items[0].Name)
}
