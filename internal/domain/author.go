package domain

// Author represents a writer referenced by zero or more books.
// Author names are unique across the catalog, compared case-insensitively.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// Books is populated only when explicitly requested (includeBooks).
	Books []*Book `json:"books,omitempty"`
}
