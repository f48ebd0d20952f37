package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/Alexandra151/LibrarySystem/internal/http/response"
	"github.com/Alexandra151/LibrarySystem/internal/service"
)

// handleListBooks returns books, optionally filtered by title substring.
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.bookService.ListBooks(r.Context(), service.ListBooksParams{
		Title: r.URL.Query().Get("title"),
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, books, s.logger)
}

// handleGetBook returns a single book by ID.
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.BadRequest(w, "Invalid book ID", s.logger)
		return
	}

	book, err := s.bookService.GetBook(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, book, s.logger)
}

// handleCreateBook creates a new book under an existing author.
func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBookRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	book, err := s.bookService.CreateBook(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, book, s.logger)
}

// handleUpdateBook replaces a book's data.
func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.BadRequest(w, "Invalid book ID", s.logger)
		return
	}

	var req service.UpdateBookRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	book, err := s.bookService.UpdateBook(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, book, s.logger)
}

// handleDeleteBook deletes a book with no open loans.
func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.BadRequest(w, "Invalid book ID", s.logger)
		return
	}

	if err := s.bookService.DeleteBook(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
