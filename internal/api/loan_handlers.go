package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/Alexandra151/LibrarySystem/internal/http/response"
	"github.com/Alexandra151/LibrarySystem/internal/service"
)

// handleListLoans returns loans newest first. With activeOnly=true,
// closed loans are filtered out.
func (s *Server) handleListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := s.loanService.ListLoans(r.Context(), service.ListLoansParams{
		ActiveOnly: queryBool(r, "activeOnly"),
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, loans, s.logger)
}

// handleGetLoan returns a single loan by ID.
func (s *Server) handleGetLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.BadRequest(w, "Invalid loan ID", s.logger)
		return
	}

	loan, err := s.loanService.GetLoan(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, loan, s.logger)
}

// handleCheckout lends out one copy of a book.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	loan, err := s.loanService.Checkout(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, loan, s.logger)
}

// handleReturn closes an open loan.
func (s *Server) handleReturn(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.BadRequest(w, "Invalid loan ID", s.logger)
		return
	}

	loan, err := s.loanService.Return(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, loan, s.logger)
}
