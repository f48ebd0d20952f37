package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Alexandra151/LibrarySystem/internal/domain"
	"github.com/Alexandra151/LibrarySystem/internal/store/sqlite"
)

// testEnv bundles the services under test, all backed by one real
// SQLite store in a temp directory.
type testEnv struct {
	store   *sqlite.Store
	authors *AuthorService
	books   *BookService
	loans   *LoanService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return &testEnv{
		store:   st,
		authors: NewAuthorService(st, logger),
		books:   NewBookService(st, logger),
		loans:   NewLoanService(st, logger),
	}
}

// createBook creates an author and a book under it.
func (e *testEnv) createBook(t *testing.T, title string, total, available int) *domain.Book {
	t.Helper()
	ctx := context.Background()

	author, err := e.authors.CreateAuthor(ctx, CreateAuthorRequest{Name: "Author of " + title})
	require.NoError(t, err)

	book, err := e.books.CreateBook(ctx, CreateBookRequest{
		Title:           title,
		AuthorID:        author.ID,
		CopiesTotal:     total,
		CopiesAvailable: available,
	})
	require.NoError(t, err)
	return book
}
