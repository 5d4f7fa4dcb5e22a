// Package di provides dependency injection configuration for the Arvand server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/arvandstudio/arvand-server/internal/config"
	"github.com/arvandstudio/arvand-server/internal/di/providers"
	"github.com/arvandstudio/arvand-server/internal/logger"
	"github.com/arvandstudio/arvand-server/internal/media/images"
	"github.com/arvandstudio/arvand-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Storage layer
	do.Provide(injector, providers.ProvideImageStorage)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Content engine
	do.Provide(injector, providers.ProvideContentEngine)

	// Business services
	do.Provide(injector, providers.ProvideNotifierService)
	do.Provide(injector, providers.ProvideAuditService)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideCartService)
	do.Provide(injector, providers.ProvideChatService)
	do.Provide(injector, providers.ProvideComposerService)
	do.Provide(injector, providers.ProvideAdminService)
	do.Provide(injector, providers.ProvideBootstrap)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*images.Storage](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*providers.ContentEngineHandle](injector)

	// Business services
	_ = do.MustInvoke[*providers.NotifierHandle](injector)
	_ = do.MustInvoke[*service.AuditService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.CartService](injector)
	_ = do.MustInvoke[*service.ChatService](injector)
	_ = do.MustInvoke[*service.ComposerService](injector)
	_ = do.MustInvoke[*service.AdminService](injector)

	// Rehydrate persisted state before serving requests
	_ = do.MustInvoke[*providers.Bootstrap](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
