package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arvandstudio/arvand-server/internal/http/response"
)

// handleListNotifications returns the queued toasts in creation order.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	response.Success(w, s.notifier.List(), s.logger)
}

// handleDismissNotification removes a toast early. Dismissing an already
// expired toast is a no-op.
func (s *Server) handleDismissNotification(w http.ResponseWriter, r *http.Request) {
	notificationID := chi.URLParam(r, "id")
	if notificationID == "" {
		response.BadRequest(w, "Notification ID is required", s.logger)
		return
	}

	s.notifier.Remove(notificationID)
	response.NoContent(w)
}
