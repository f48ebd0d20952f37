// Package access defines the operation-level authorization policy.
//
// Every API operation maps to an Operation constant, and the policy
// table lists which roles may perform it. Operations absent from the
// table are denied for everyone, so a newly added operation is locked
// down until it is explicitly granted.
package access

import "github.com/Alexandra151/LibrarySystem/internal/domain"

// Operation identifies a single guarded API operation.
type Operation string

const (
	OpListAuthors  Operation = "authors.list"
	OpGetAuthor    Operation = "authors.get"
	OpCreateAuthor Operation = "authors.create"
	OpUpdateAuthor Operation = "authors.update"
	OpDeleteAuthor Operation = "authors.delete"

	OpListBooks  Operation = "books.list"
	OpGetBook    Operation = "books.get"
	OpCreateBook Operation = "books.create"
	OpUpdateBook Operation = "books.update"
	OpDeleteBook Operation = "books.delete"

	OpCheckout  Operation = "loans.checkout"
	OpReturn    Operation = "loans.return"
	OpListLoans Operation = "loans.list"
	OpGetLoan   Operation = "loans.get"
)

// Public marks operations that need no authentication at all.
var public = map[Operation]bool{
	OpListAuthors: true,
	OpGetAuthor:   true,
	OpListBooks:   true,
	OpGetBook:     true,
}

// policy maps each authenticated operation to the roles allowed to
// perform it.
var policy = map[Operation][]domain.Role{
	OpCreateAuthor: {domain.RoleAdmin, domain.RoleLibrarian},
	OpUpdateAuthor: {domain.RoleAdmin, domain.RoleLibrarian},
	OpDeleteAuthor: {domain.RoleAdmin},

	OpCreateBook: {domain.RoleAdmin, domain.RoleLibrarian},
	OpUpdateBook: {domain.RoleAdmin, domain.RoleLibrarian},
	OpDeleteBook: {domain.RoleAdmin},

	OpCheckout:  {domain.RoleAdmin, domain.RoleLibrarian},
	OpReturn:    {domain.RoleAdmin, domain.RoleLibrarian},
	OpListLoans: {domain.RoleAdmin, domain.RoleLibrarian},
	OpGetLoan:   {domain.RoleAdmin, domain.RoleLibrarian},
}

// IsPublic reports whether the operation requires no authentication.
func IsPublic(op Operation) bool {
	return public[op]
}

// AllowedRoles returns the roles permitted to perform the operation.
// The returned slice must not be mutated.
func AllowedRoles(op Operation) []domain.Role {
	return policy[op]
}

// Allowed reports whether any of the given roles may perform the
// operation. Public operations are allowed for everyone, including
// callers with no roles at all.
func Allowed(op Operation, roles []domain.Role) bool {
	if public[op] {
		return true
	}
	allowed, ok := policy[op]
	if !ok {
		return false
	}
	for _, have := range roles {
		for _, want := range allowed {
			if have == want {
				return true
			}
		}
	}
	return false
}
