package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/arvandstudio/arvand-server/internal/http/response"
)

// imageContentTypes maps stored file extensions to content types.
var imageContentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// handleGetImage serves a stored upload with an ETag for cache validation.
func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		response.BadRequest(w, "Image name is required", s.logger)
		return
	}

	data, err := s.images.Get(name)
	if err != nil {
		response.NotFound(w, "Image not found", s.logger)
		return
	}

	hash, err := s.images.Hash(name)
	if err == nil {
		etag := `"` + hash[:16] + `"`
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}

	contentType := "application/octet-stream"
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		if ct, ok := imageContentTypes[name[idx+1:]]; ok {
			contentType = ct
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("failed to write image response", "name", name, "error", err)
	}
}
