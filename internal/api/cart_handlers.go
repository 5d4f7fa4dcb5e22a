package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arvandstudio/arvand-server/internal/http/response"
)

// AddCartItemRequest identifies the book to add.
type AddCartItemRequest struct {
	BookID string `json:"book_id" validate:"required"`
}

// handleGetCart returns the cart lines and the derived total.
func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]any{
		"items": s.cart.Items(),
		"total": s.cart.Total(),
	}, s.logger)
}

// handleAddCartItem puts one book in the cart.
func (s *Server) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	book, ok := s.catalog.Book(req.BookID)
	if !ok {
		response.NotFound(w, "Book not found", s.logger)
		return
	}

	item, err := s.cart.Add(r.Context(), book)
	if err != nil {
		s.logger.Error("Failed to add cart item", "book_id", req.BookID, "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"item":  item,
		"total": s.cart.Total(),
	}, s.logger)
}

// handleRemoveCartItem takes one line out of the cart. Unknown ids still
// return 204; removal is idempotent.
func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")
	if bookID == "" {
		response.BadRequest(w, "Book ID is required", s.logger)
		return
	}

	if err := s.cart.Remove(r.Context(), bookID); err != nil {
		s.logger.Error("Failed to remove cart item", "book_id", bookID, "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleClearCart empties the cart.
func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	if err := s.cart.Clear(r.Context()); err != nil {
		s.logger.Error("Failed to clear cart", "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
