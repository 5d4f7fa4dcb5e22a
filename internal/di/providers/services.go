package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/arvandstudio/arvand-server/internal/config"
	"github.com/arvandstudio/arvand-server/internal/logger"
	"github.com/arvandstudio/arvand-server/internal/media/images"
	"github.com/arvandstudio/arvand-server/internal/service"
)

// NotifierHandle wraps the notifier so its expiry timers stop on shutdown.
type NotifierHandle struct {
	*service.NotifierService
}

// Shutdown implements do.Shutdownable.
func (h *NotifierHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideNotifierService provides the toast notification service.
func ProvideNotifierService(i do.Injector) (*NotifierHandle, error) {
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return &NotifierHandle{NotifierService: service.NewNotifierService(sseHandle.Manager, log.Logger)}, nil
}

// ProvideAuditService provides the admin action log.
func ProvideAuditService(i do.Injector) (*service.AuditService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuditService(storeHandle.Store, sseHandle.Manager, log.Logger), nil
}

// ProvideCatalogService provides the artwork, book and journal catalog.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	audit := do.MustInvoke[*service.AuditService](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(storeHandle.Store, indexHandle.SearchIndex, audit, sseHandle.Manager, log.Logger), nil
}

// ProvideCartService provides the shopping cart.
func ProvideCartService(i do.Injector) (*service.CartService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	notifier := do.MustInvoke[*NotifierHandle](i)
	audit := do.MustInvoke[*service.AuditService](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCartService(storeHandle.Store, notifier.NotifierService, audit, sseHandle.Manager, log.Logger), nil
}

// ProvideChatService provides the strategic advisor transcript.
func ProvideChatService(i do.Injector) (*service.ChatService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	engine := do.MustInvoke[*ContentEngineHandle](i)
	catalog := do.MustInvoke[*service.CatalogService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewChatService(storeHandle.Store, engine.Advisor, catalog, log.Logger), nil
}

// ProvideComposerService provides the admin content pipeline.
func ProvideComposerService(i do.Injector) (*service.ComposerService, error) {
	catalog := do.MustInvoke[*service.CatalogService](i)
	notifier := do.MustInvoke[*NotifierHandle](i)
	engine := do.MustInvoke[*ContentEngineHandle](i)
	imageStorage := do.MustInvoke[*images.Storage](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewComposerService(catalog, notifier.NotifierService, engine.Generator, imageStorage, log.Logger), nil
}

// ProvideAdminService provides admin key authentication.
func ProvideAdminService(i do.Injector) (*service.AdminService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	audit := do.MustInvoke[*service.AuditService](i)
	notifier := do.MustInvoke[*NotifierHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAdminService(cfg.Admin.Key, audit, notifier.NotifierService, log.Logger), nil
}

// Bootstrap holds the rehydration result. Invoking it loads every
// persisted collection into memory and records the startup audit entry.
type Bootstrap struct{}

// ProvideBootstrap rehydrates the in-memory state from the store.
func ProvideBootstrap(i do.Injector) (*Bootstrap, error) {
	audit := do.MustInvoke[*service.AuditService](i)
	catalog := do.MustInvoke[*service.CatalogService](i)
	cart := do.MustInvoke[*service.CartService](i)
	chat := do.MustInvoke[*service.ChatService](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx := context.Background()
	if err := audit.Load(ctx); err != nil {
		return nil, err
	}
	if err := catalog.Load(ctx); err != nil {
		return nil, err
	}
	if err := cart.Load(ctx); err != nil {
		return nil, err
	}
	if err := chat.Load(ctx); err != nil {
		return nil, err
	}

	if _, err := audit.Append(ctx, "Connected to Arvand Database successfully"); err != nil {
		log.Warn("Failed to record startup audit entry", "error", err)
	}

	artworks, books, posts := catalog.Counts()
	log.Info("State rehydrated", "artworks", artworks, "books", books, "journal_posts", posts)

	return &Bootstrap{}, nil
}
