package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/Alexandra151/LibrarySystem/internal/http/response"
	"github.com/Alexandra151/LibrarySystem/internal/service"
)

// handleListAuthors returns a page of authors. Supports name substring
// filtering and page/pageSize paging; the unpaged match count goes out
// in the X-Total-Count header.
func (s *Server) handleListAuthors(w http.ResponseWriter, r *http.Request) {
	page, err := s.authorService.ListAuthors(r.Context(), service.ListAuthorsParams{
		Name:     r.URL.Query().Get("name"),
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "pageSize", 50),
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.TotalCount(w, page.Total)
	response.Success(w, page.Items, s.logger)
}

// handleGetAuthor returns a single author. With includeBooks=true the
// author's books are embedded in the response.
func (s *Server) handleGetAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.BadRequest(w, "Invalid author ID", s.logger)
		return
	}

	author, err := s.authorService.GetAuthor(r.Context(), id, queryBool(r, "includeBooks"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, author, s.logger)
}

// handleCreateAuthor creates a new author.
func (s *Server) handleCreateAuthor(w http.ResponseWriter, r *http.Request) {
	var req service.CreateAuthorRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	author, err := s.authorService.CreateAuthor(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, author, s.logger)
}

// handleUpdateAuthor replaces an author's data.
func (s *Server) handleUpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.BadRequest(w, "Invalid author ID", s.logger)
		return
	}

	var req service.UpdateAuthorRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	author, err := s.authorService.UpdateAuthor(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, author, s.logger)
}

// handleDeleteAuthor deletes an author without books.
func (s *Server) handleDeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.BadRequest(w, "Invalid author ID", s.logger)
		return
	}

	if err := s.authorService.DeleteAuthor(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
