package service

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"github.com/arvandstudio/arvand-server/internal/domain"
	"github.com/arvandstudio/arvand-server/internal/errors"
)

// AdminService gates the admin surface behind a shared secret. This is a
// presentation gate, not real access control; there are no accounts,
// sessions or lockouts.
type AdminService struct {
	key      string
	audit    *AuditService
	notifier *NotifierService
	logger   *slog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(key string, audit *AuditService, notifier *NotifierService, logger *slog.Logger) *AdminService {
	return &AdminService{
		key:      key,
		audit:    audit,
		notifier: notifier,
		logger:   logger,
	}
}

// Authenticate checks a presented key in constant time.
func (s *AdminService) Authenticate(key string) bool {
	return subtle.ConstantTimeCompare([]byte(key), []byte(s.key)) == 1
}

// Login validates the key and records the attempt. Both outcomes leave an
// audit entry and a toast.
func (s *AdminService) Login(ctx context.Context, key string) error {
	if !s.Authenticate(key) {
		if _, err := s.audit.Append(ctx, "تلاش ناموفق برای ورود"); err != nil {
			s.logger.Warn("failed to append audit entry", "error", err)
		}
		s.notifier.Notify("کلید امنیتی نامعتبر است.", domain.SeverityError)
		return errors.InvalidCredentials("invalid admin key")
	}

	if _, err := s.audit.Append(ctx, "ورود مدیر به سیستم فرماندهی"); err != nil {
		s.logger.Warn("failed to append audit entry", "error", err)
	}
	s.notifier.Notify("خوش آمدید دکتر. پنل فرماندهی آماده است.", domain.SeveritySuccess)
	return nil
}

// Logout records the end of an admin session.
func (s *AdminService) Logout(ctx context.Context) {
	if _, err := s.audit.Append(ctx, "خروج مدیر از سیستم"); err != nil {
		s.logger.Warn("failed to append audit entry", "error", err)
	}
}
