package api

import (
	"net/http"

	"github.com/arvandstudio/arvand-server/internal/http/response"
)

// handleHealthCheck reports service liveness and catalog sizes.
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	artworks, books, posts := s.catalog.Counts()

	response.Success(w, map[string]any{
		"status":   "ok",
		"artworks": artworks,
		"books":    books,
		"journal":  posts,
	}, s.logger)
}
