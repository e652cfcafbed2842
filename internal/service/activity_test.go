package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/ticket-store/internal/events"
)

func TestActivityLog_LogsEveryEventType(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	dispatcher := events.NewInMemoryDispatcher(logger)

	NewActivityLog(dispatcher, logger).RegisterHandlers()

	ctx := context.Background()
	for _, eventType := range events.All {
		require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: eventType}))
	}

	entries := logs.FilterMessage("activity").All()
	require.Len(t, entries, len(events.All))
	for i, entry := range entries {
		assert.Equal(t, string(events.All[i]), entry.ContextMap()["event"])
	}
}

func TestActivityLog_NilDispatcherIsInert(t *testing.T) {
	log := NewActivityLog(nil, zap.NewNop())
	assert.NotPanics(t, func() { log.RegisterHandlers() })
}
