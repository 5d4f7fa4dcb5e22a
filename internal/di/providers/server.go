package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/arvandstudio/arvand-server/internal/api"
	"github.com/arvandstudio/arvand-server/internal/config"
	"github.com/arvandstudio/arvand-server/internal/logger"
	"github.com/arvandstudio/arvand-server/internal/media/images"
	"github.com/arvandstudio/arvand-server/internal/service"
	"github.com/arvandstudio/arvand-server/internal/sse"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	imageStorage := do.MustInvoke[*images.Storage](i)

	catalog := do.MustInvoke[*service.CatalogService](i)
	cart := do.MustInvoke[*service.CartService](i)
	notifier := do.MustInvoke[*NotifierHandle](i)
	audit := do.MustInvoke[*service.AuditService](i)
	chat := do.MustInvoke[*service.ChatService](i)
	composer := do.MustInvoke[*service.ComposerService](i)
	admin := do.MustInvoke[*service.AdminService](i)
	searchService := do.MustInvoke[*service.SearchService](i)

	sseHandler := sse.NewHandler(sseHandle.Manager, log.Logger)

	services := api.Services{
		Catalog:  catalog,
		Cart:     cart,
		Notifier: notifier.NotifierService,
		Audit:    audit,
		Chat:     chat,
		Composer: composer,
		Admin:    admin,
		Search:   searchService,
	}

	handler := api.NewServer(services, imageStorage, sseHandler, cfg.Server.CORSOrigins, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv}, nil
}
