package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Alexandra151/LibrarySystem/internal/store"
)

func TestCheckoutDecrementsAvailability(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := createTestBook(t, s, "Solaris", 2, 2)

	loan, err := checkout(t, s, b.ID)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if loan.ID == 0 {
		t.Error("expected assigned loan ID")
	}
	if loan.ReturnDate != nil {
		t.Error("new loan must be open")
	}

	got, err := s.GetBook(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CopiesAvailable != 1 {
		t.Errorf("copies_available = %d, want 1", got.CopiesAvailable)
	}
}

func TestCheckoutExhaustedCreatesNoLoan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := createTestBook(t, s, "Niezwyciezony", 1, 1)

	if _, err := checkout(t, s, b.ID); err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	if _, err := checkout(t, s, b.ID); !errors.Is(err, store.ErrNoCopies) {
		t.Fatalf("expected ErrNoCopies, got %v", err)
	}

	loans, err := s.ListLoans(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(loans) != 1 {
		t.Errorf("expected 1 loan after failed checkout, got %d", len(loans))
	}

	got, err := s.GetBook(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CopiesAvailable != 0 {
		t.Errorf("copies_available = %d, want 0", got.CopiesAvailable)
	}
}

func TestCheckoutMissingBook(t *testing.T) {
	s := newTestStore(t)
	if _, err := checkout(t, s, 9999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReturnRestoresAvailability(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := createTestBook(t, s, "Eden", 1, 1)
	loan, err := checkout(t, s, b.ID)
	if err != nil {
		t.Fatal(err)
	}

	returned, err := s.Return(ctx, loan.ID, loan.LoanDate.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("return: %v", err)
	}
	if returned.ReturnDate == nil {
		t.Fatal("expected return date to be set")
	}

	got, err := s.GetBook(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CopiesAvailable != 1 {
		t.Errorf("copies_available = %d, want 1", got.CopiesAvailable)
	}

	// The book is available again, so a fresh checkout must succeed.
	if _, err := checkout(t, s, b.ID); err != nil {
		t.Errorf("checkout after return: %v", err)
	}
}

func TestReturnTwice(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := createTestBook(t, s, "Fiasko", 3, 3)
	loan, err := checkout(t, s, b.ID)
	if err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	if _, err := s.Return(ctx, loan.ID, now); err != nil {
		t.Fatalf("first return: %v", err)
	}
	if _, err := s.Return(ctx, loan.ID, now); !errors.Is(err, store.ErrAlreadyReturned) {
		t.Fatalf("expected ErrAlreadyReturned, got %v", err)
	}

	// The double return must not increment availability a second time.
	got, err := s.GetBook(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CopiesAvailable != 3 {
		t.Errorf("copies_available = %d, want 3", got.CopiesAvailable)
	}
}

func TestReturnMissingLoan(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Return(context.Background(), 404, time.Now()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReturnAfterBookDeleted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := createTestBook(t, s, "Glos Pana", 1, 1)
	loan, err := checkout(t, s, b.ID)
	if err != nil {
		t.Fatal(err)
	}

	// An open loan blocks deletion, so simulate the purge directly.
	if _, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, b.ID); err != nil {
		t.Fatal(err)
	}

	returned, err := s.Return(ctx, loan.ID, time.Now())
	if err != nil {
		t.Fatalf("return after book deleted: %v", err)
	}
	if returned.ReturnDate == nil {
		t.Error("expected loan to be closed")
	}
}

func TestReturnAvailabilityClampedAtTotal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := createTestBook(t, s, "Opowiesci o pilocie Pirxie", 2, 2)
	loan, err := checkout(t, s, b.ID)
	if err != nil {
		t.Fatal(err)
	}

	// Shrink the total below the restored value. The return must clamp.
	b.CopiesTotal = 1
	b.CopiesAvailable = 1
	if err := s.UpdateBook(ctx, b); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Return(ctx, loan.ID, time.Now()); err != nil {
		t.Fatalf("return: %v", err)
	}

	got, err := s.GetBook(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CopiesAvailable != 1 {
		t.Errorf("copies_available = %d, want 1 (clamped at total)", got.CopiesAvailable)
	}
}

// TestCheckoutReturnScenario walks a two-copy title through the full
// lifecycle: two checkouts drain it, a third fails, a return restores it.
func TestCheckoutReturnScenario(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := createTestBook(t, s, "Bajki robotow", 2, 2)

	first, err := checkout(t, s, b.ID)
	if err != nil {
		t.Fatalf("first checkout: %v", err)
	}
	if got, _ := s.GetBook(ctx, b.ID); got.CopiesAvailable != 1 {
		t.Errorf("after first checkout: copies_available = %d, want 1", got.CopiesAvailable)
	}

	if _, err := checkout(t, s, b.ID); err != nil {
		t.Fatalf("second checkout: %v", err)
	}
	if got, _ := s.GetBook(ctx, b.ID); got.CopiesAvailable != 0 {
		t.Errorf("after second checkout: copies_available = %d, want 0", got.CopiesAvailable)
	}

	if _, err := checkout(t, s, b.ID); !errors.Is(err, store.ErrNoCopies) {
		t.Fatalf("third checkout: expected ErrNoCopies, got %v", err)
	}

	if _, err := s.Return(ctx, first.ID, time.Now()); err != nil {
		t.Fatalf("return: %v", err)
	}
	if got, _ := s.GetBook(ctx, b.ID); got.CopiesAvailable != 1 {
		t.Errorf("after return: copies_available = %d, want 1", got.CopiesAvailable)
	}
}

// TestConcurrentCheckouts races many goroutines against a small stock and
// verifies exactly as many loans succeed as there are copies.
func TestConcurrentCheckouts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const (
		copies     = 3
		contenders = 20
	)
	b := createTestBook(t, s, "Kongres futurologiczny", copies, copies)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		exhausted int
	)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := checkout(t, s, b.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, store.ErrNoCopies):
				exhausted++
			default:
				t.Errorf("unexpected checkout error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != copies {
		t.Errorf("succeeded = %d, want %d", succeeded, copies)
	}
	if exhausted != contenders-copies {
		t.Errorf("exhausted = %d, want %d", exhausted, contenders-copies)
	}

	got, err := s.GetBook(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CopiesAvailable != 0 {
		t.Errorf("copies_available = %d, want 0", got.CopiesAvailable)
	}

	loans, err := s.ListLoans(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(loans) != copies {
		t.Errorf("open loans = %d, want %d", len(loans), copies)
	}
}

func TestListLoansOrderAndActiveFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := createTestBook(t, s, "Pamietnik znaleziony w wannie", 3, 3)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var ids []int64
	for i := 0; i < 3; i++ {
		loanDate := base.AddDate(0, 0, i)
		loan, err := s.Checkout(ctx, b.ID, loanDate, loanDate.AddDate(0, 0, 14))
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, loan.ID)
	}

	all, err := s.ListLoans(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 loans, got %d", len(all))
	}
	// Newest first.
	if all[0].ID != ids[2] || all[2].ID != ids[0] {
		t.Errorf("unexpected order: %d, %d, %d", all[0].ID, all[1].ID, all[2].ID)
	}

	if _, err := s.Return(ctx, ids[1], base.AddDate(0, 0, 5)); err != nil {
		t.Fatal(err)
	}

	active, err := s.ListLoans(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active loans, got %d", len(active))
	}
	for _, l := range active {
		if l.ID == ids[1] {
			t.Error("closed loan present in active listing")
		}
	}
}

func TestGetLoan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := createTestBook(t, s, "Cyberiada", 1, 1)
	loan, err := checkout(t, s, b.ID)
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.GetLoan(ctx, loan.ID)
	if err != nil {
		t.Fatalf("get loan: %v", err)
	}
	if got.BookID != b.ID {
		t.Errorf("book_id = %d, want %d", got.BookID, b.ID)
	}
	if !got.IsOpen() {
		t.Error("expected open loan")
	}

	if _, err := s.GetLoan(ctx, 999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
