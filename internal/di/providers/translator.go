package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/arvandstudio/arvand-server/internal/config"
	"github.com/arvandstudio/arvand-server/internal/errors"
	"github.com/arvandstudio/arvand-server/internal/logger"
	"github.com/arvandstudio/arvand-server/internal/service"
	"github.com/arvandstudio/arvand-server/internal/translator"
)

// ContentEngineHandle bundles the generator and advisor sides of the
// content engine with shutdown capability. When no API key is configured
// both sides stay usable but fail per request, so the rest of the server
// still starts.
type ContentEngineHandle struct {
	Generator service.Generator
	Advisor   service.Advisor

	client *translator.Client
}

// Shutdown implements do.Shutdownable.
func (h *ContentEngineHandle) Shutdown() error {
	if h.client != nil {
		h.client.Close()
	}
	return nil
}

// offlineEngine reports the missing configuration on every call.
type offlineEngine struct{}

func (offlineEngine) GenerateLocalized(context.Context, translator.Kind, string, string, string) (*translator.Content, error) {
	return nil, errors.Upstream("content engine is not configured")
}

func (offlineEngine) Advise(context.Context, string, string) (string, error) {
	return "", errors.Upstream("content engine is not configured")
}

// ProvideContentEngine provides the translation and advisory client.
func ProvideContentEngine(i do.Injector) (*ContentEngineHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Translator.APIKey == "" {
		log.Warn("No translator API key configured, admin content pipeline disabled")
		return &ContentEngineHandle{
			Generator: offlineEngine{},
			Advisor:   offlineEngine{},
		}, nil
	}

	client, err := translator.New(translator.Config{
		APIKey:  cfg.Translator.APIKey,
		BaseURL: cfg.Translator.BaseURL,
		Model:   cfg.Translator.Model,
		Timeout: cfg.Translator.Timeout,
	}, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Content engine ready", "model", cfg.Translator.Model)

	return &ContentEngineHandle{
		Generator: client,
		Advisor:   client,
		client:    client,
	}, nil
}
