package domain

// Book represents a title in the catalog with a finite number of physical copies.
//
// Invariant: 0 <= CopiesAvailable <= CopiesTotal, and CopiesAvailable equals
// CopiesTotal minus the number of open loans referencing this book.
type Book struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	AuthorID        int64  `json:"author_id"`
	CopiesTotal     int    `json:"copies_total"`
	CopiesAvailable int    `json:"copies_available"`
}

// ClampCopies normalizes copy counts without erroring: CopiesTotal is raised
// to at least 1 and CopiesAvailable is clamped into [0, CopiesTotal].
// Out-of-range values on create/update are silently corrected rather than
// rejected.
func (b *Book) ClampCopies() {
	if b.CopiesTotal < 1 {
		b.CopiesTotal = 1
	}
	if b.CopiesAvailable < 0 {
		b.CopiesAvailable = 0
	}
	if b.CopiesAvailable > b.CopiesTotal {
		b.CopiesAvailable = b.CopiesTotal
	}
}

// HasAvailableCopies reports whether at least one copy can be checked out.
func (b *Book) HasAvailableCopies() bool {
	return b.CopiesAvailable > 0
}
