package domain

import "time"

// Loan records a book copy checked out to a patron.
//
// A loan is open while ReturnDate is nil and counts against the book's
// available copies. Closing a loan (setting ReturnDate) is the only mutation
// after creation; a closed loan is never reopened.
type Loan struct {
	ID         int64      `json:"id"`
	BookID     int64      `json:"book_id"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
}

// IsOpen reports whether the loan is still outstanding.
func (l *Loan) IsOpen() bool {
	return l.ReturnDate == nil
}
