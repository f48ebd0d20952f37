package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/Alexandra151/LibrarySystem/internal/domain"
	"github.com/Alexandra151/LibrarySystem/internal/store"
)

func TestCreateUserAndLookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &domain.User{
		Username:     "Librarian",
		PasswordHash: "$argon2id$fake",
		Roles:        []domain.Role{domain.RoleLibrarian, domain.RoleMember},
	}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected assigned ID")
	}

	got, err := s.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Username != "Librarian" || got.PasswordHash != "$argon2id$fake" {
		t.Errorf("unexpected user: %+v", got)
	}
	if len(got.Roles) != 2 || got.Roles[0] != domain.RoleLibrarian {
		t.Errorf("roles = %v", got.Roles)
	}

	// Username lookup is case-insensitive.
	byName, err := s.GetUserByUsername(ctx, "LIBRARIAN")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if byName.ID != u.ID {
		t.Errorf("id = %d, want %d", byName.ID, u.ID)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, &domain.User{
		Username: "admin", PasswordHash: "x", Roles: []domain.Role{domain.RoleAdmin},
	}); err != nil {
		t.Fatal(err)
	}

	err := s.CreateUser(ctx, &domain.User{
		Username: "ADMIN", PasswordHash: "y", Roles: []domain.Role{domain.RoleMember},
	})
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.GetUser(ctx, 77); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetUserByUsername(ctx, "nobody"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCountUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.CountUsers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}

	for _, name := range []string{"alice", "bob"} {
		if err := s.CreateUser(ctx, &domain.User{
			Username: name, PasswordHash: "x", Roles: []domain.Role{domain.RoleMember},
		}); err != nil {
			t.Fatal(err)
		}
	}

	n, err = s.CountUsers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}
