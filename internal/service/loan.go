package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Alexandra151/LibrarySystem/internal/domain"
	domainerrors "github.com/Alexandra151/LibrarySystem/internal/errors"
	"github.com/Alexandra151/LibrarySystem/internal/store"
)

// LoanService orchestrates checkouts and returns.
type LoanService struct {
	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewLoanService creates a new loan service.
func NewLoanService(store store.Store, logger *slog.Logger) *LoanService {
	return &LoanService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// CheckoutRequest contains the data for a new loan.
type CheckoutRequest struct {
	BookID int64 `json:"bookId" validate:"required,gt=0"`
	Days   int   `json:"days" validate:"required,gte=1"`
}

// ListLoansParams narrows loan listings.
type ListLoansParams struct {
	ActiveOnly bool
}

// Checkout lends out one copy of a book for the requested number of
// days. The copy decrement and loan creation are atomic, so concurrent
// checkouts can never lend out more copies than exist.
func (s *LoanService) Checkout(ctx context.Context, req CheckoutRequest) (*domain.Loan, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	loanDate := s.now().UTC()
	dueDate := loanDate.AddDate(0, 0, req.Days)

	loan, err := s.store.Checkout(ctx, req.BookID, loanDate, dueDate)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFoundf("book %d not found", req.BookID)
		case errors.Is(err, store.ErrNoCopies):
			return nil, domainerrors.Exhausted("no copies available")
		}
		return nil, fmt.Errorf("checkout: %w", err)
	}

	s.logger.Info("book checked out",
		"loan_id", loan.ID,
		"book_id", loan.BookID,
		"due_date", loan.DueDate,
	)
	return loan, nil
}

// Return closes an open loan and restores one copy to the book. A loan
// whose book has since been deleted still closes cleanly.
func (s *LoanService) Return(ctx context.Context, loanID int64) (*domain.Loan, error) {
	loan, err := s.store.Return(ctx, loanID, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, domainerrors.NotFoundf("loan %d not found", loanID)
		case errors.Is(err, store.ErrAlreadyReturned):
			return nil, domainerrors.AlreadyReturned("loan is already returned")
		}
		return nil, fmt.Errorf("return: %w", err)
	}

	s.logger.Info("book returned", "loan_id", loan.ID, "book_id", loan.BookID)
	return loan, nil
}

// GetLoan retrieves a loan by ID.
func (s *LoanService) GetLoan(ctx context.Context, id int64) (*domain.Loan, error) {
	loan, err := s.store.GetLoan(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.NotFoundf("loan %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return loan, nil
}

// ListLoans returns loans newest first. With ActiveOnly, closed loans
// are filtered out.
func (s *LoanService) ListLoans(ctx context.Context, params ListLoansParams) ([]*domain.Loan, error) {
	loans, err := s.store.ListLoans(ctx, params.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	if loans == nil {
		loans = []*domain.Loan{}
	}
	return loans, nil
}
