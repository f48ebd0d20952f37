// Package main provides a tool to seed the database with demo data.
//
// It creates the three demo accounts (admin, librarian, member) and a
// small starter catalog so a fresh install has something to browse.
//
// Usage:
//
//	DATA_PATH=~/LibrarySystem/data go run ./cmd/seed
//	DATA_PATH=~/LibrarySystem/data go run ./cmd/seed --skip-catalog
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Alexandra151/LibrarySystem/internal/auth"
	"github.com/Alexandra151/LibrarySystem/internal/domain"
	"github.com/Alexandra151/LibrarySystem/internal/store"
	"github.com/Alexandra151/LibrarySystem/internal/store/sqlite"
)

var skipCatalog = flag.Bool("skip-catalog", false, "Only create demo users, no sample authors or books")

// demoUsers are the accounts every fresh install starts with. The
// passwords are for local evaluation only.
var demoUsers = []struct {
	username string
	password string
	roles    []domain.Role
}{
	{"admin", "admin123!", []domain.Role{domain.RoleAdmin}},
	{"librarian", "librarian123!", []domain.Role{domain.RoleLibrarian}},
	{"member", "member123!", []domain.Role{domain.RoleMember}},
}

var sampleCatalog = []struct {
	author string
	books  []struct {
		title  string
		copies int
	}
}{
	{"Stanislaw Lem", []struct {
		title  string
		copies int
	}{
		{"Solaris", 3},
		{"The Cyberiad", 2},
	}},
	{"Ursula K. Le Guin", []struct {
		title  string
		copies int
	}{
		{"The Dispossessed", 2},
		{"The Left Hand of Darkness", 1},
	}},
	{"Jorge Luis Borges", []struct {
		title  string
		copies int
	}{
		{"Ficciones", 2},
	}},
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/LibrarySystem/data")
	}
	if err := os.MkdirAll(dataPath, 0o700); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataPath, "library.db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, slog.New(slog.DiscardHandler))
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	seedUsers(ctx, s)

	if !*skipCatalog {
		seedCatalog(ctx, s)
	}

	fmt.Println("Done.")
}

func seedUsers(ctx context.Context, s store.Store) {
	for _, u := range demoUsers {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", u.username, err)
		}

		user := &domain.User{
			Username:     u.username,
			PasswordHash: hash,
			Roles:        u.roles,
		}
		err = s.CreateUser(ctx, user)
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			fmt.Printf("User %q already exists, skipping\n", u.username)
		case err != nil:
			log.Fatalf("Failed to create user %s: %v", u.username, err)
		default:
			fmt.Printf("Created user %q with roles %v\n", u.username, user.RoleStrings())
		}
	}
}

func seedCatalog(ctx context.Context, s store.Store) {
	for _, entry := range sampleCatalog {
		author := &domain.Author{Name: entry.author}
		err := s.CreateAuthor(ctx, author)
		if errors.Is(err, store.ErrAlreadyExists) {
			fmt.Printf("Author %q already exists, skipping\n", entry.author)
			continue
		}
		if err != nil {
			log.Fatalf("Failed to create author %s: %v", entry.author, err)
		}

		for _, b := range entry.books {
			book := &domain.Book{
				Title:           b.title,
				AuthorID:        author.ID,
				CopiesTotal:     b.copies,
				CopiesAvailable: b.copies,
			}
			if err := s.CreateBook(ctx, book); err != nil {
				log.Fatalf("Failed to create book %s: %v", b.title, err)
			}
		}
		fmt.Printf("Created author %q with %d books\n", entry.author, len(entry.books))
	}
}
