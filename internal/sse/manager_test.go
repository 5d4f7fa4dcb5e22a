package sse

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_EmitReachesConnectedClient(t *testing.T) {
	m := NewManager(slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	client, err := m.Connect()
	require.NoError(t, err)
	assert.Equal(t, 1, m.ClientCount())

	m.Emit(NewEvent(EventArtworkCreated, map[string]string{"id": "art-1"}))

	select {
	case event := <-client.EventChan:
		assert.Equal(t, EventArtworkCreated, event.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}

	m.Disconnect(client.ID)
	assert.Equal(t, 0, m.ClientCount())
}

func TestManager_DisconnectUnknownClient(t *testing.T) {
	m := NewManager(slog.New(slog.DiscardHandler))
	m.Disconnect("sse-unknown")
	assert.Equal(t, 0, m.ClientCount())
}

func TestManager_EmitAfterShutdownIsDropped(t *testing.T) {
	m := NewManager(slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	require.NoError(t, m.Shutdown(shutdownCtx))

	// Must not panic on the closed channel.
	m.Emit(NewEvent(EventCartUpdated, nil))
}
