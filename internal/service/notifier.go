package service

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/arvandstudio/arvand-server/internal/domain"
	"github.com/arvandstudio/arvand-server/internal/id"
	"github.com/arvandstudio/arvand-server/internal/sse"
)

// notificationTTL is how long a toast stays queued before it expires.
const notificationTTL = 5 * time.Second

// NotifierService queues transient toast notifications. Notifications are
// deliberately not persisted; they expire on their own a few seconds after
// creation. Two notifications with the same message are independent
// entries and expire independently.
type NotifierService struct {
	sseManager *sse.Manager
	logger     *slog.Logger
	ttl        time.Duration

	mu            sync.Mutex
	notifications []*domain.Notification
	timers        map[string]*time.Timer
}

// NewNotifierService creates a new notifier.
func NewNotifierService(sseManager *sse.Manager, logger *slog.Logger) *NotifierService {
	return &NotifierService{
		sseManager: sseManager,
		logger:     logger,
		ttl:        notificationTTL,
		timers:     make(map[string]*time.Timer),
	}
}

// Notify queues a notification and schedules its automatic removal.
func (s *NotifierService) Notify(message string, severity domain.Severity) *domain.Notification {
	notificationID, err := id.Generate("ntf")
	if err != nil {
		// Identity generation only fails when the system's entropy source
		// is broken; the toast is cosmetic, so log and drop it.
		s.logger.Error("failed to generate notification ID", "error", err)
		return nil
	}

	notification := &domain.Notification{
		ID:        notificationID,
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.notifications = append(s.notifications, notification)
	s.timers[notification.ID] = time.AfterFunc(s.ttl, func() {
		s.Remove(notification.ID)
	})
	s.mu.Unlock()

	s.sseManager.Emit(sse.NewEvent(sse.EventNotificationCreated, notification))

	return notification
}

// Remove dismisses a notification by id. Safe to call after the automatic
// expiry already removed it.
func (s *NotifierService) Remove(notificationID string) {
	s.mu.Lock()

	idx := slices.IndexFunc(s.notifications, func(n *domain.Notification) bool {
		return n.ID == notificationID
	})
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	s.notifications = slices.Delete(s.notifications, idx, idx+1)
	if timer, ok := s.timers[notificationID]; ok {
		timer.Stop()
		delete(s.timers, notificationID)
	}
	s.mu.Unlock()

	s.sseManager.Emit(sse.NewEvent(sse.EventNotificationExpired, map[string]string{"id": notificationID}))
}

// List returns the currently queued notifications in creation order.
func (s *NotifierService) List() []*domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.notifications)
}

// Close stops all pending expiry timers.
func (s *NotifierService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for notificationID, timer := range s.timers {
		timer.Stop()
		delete(s.timers, notificationID)
	}
}
