package api

import (
	"net/http"

	"github.com/arvandstudio/arvand-server/internal/http/response"
)

// adminKeyHeader carries the shared admin secret.
const adminKeyHeader = "X-Admin-Key"

// requireAdminKey gates the admin surface behind the shared secret.
// Requests without a valid key are rejected before any handler runs, so
// they can never mutate state.
func (s *Server) requireAdminKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(adminKeyHeader)
		if key == "" {
			response.Unauthorized(w, "Missing admin key", s.logger)
			return
		}

		if !s.admin.Authenticate(key) {
			response.Unauthorized(w, "Invalid admin key", s.logger)
			return
		}

		next.ServeHTTP(w, r)
	})
}
