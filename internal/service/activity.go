package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-store/internal/events"
)

// ActivityLog writes a structured line for every store mutation. On a
// single device the log is the notification channel: there is no one else
// to fan events out to.
type ActivityLog struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivityLog creates the service.
func NewActivityLog(dispatcher events.Dispatcher, logger *zap.Logger) *ActivityLog {
	return &ActivityLog{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to the full event stream.
func (a *ActivityLog) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range events.All {
		a.dispatcher.Subscribe(eventType, a.handle)
	}
}

func (a *ActivityLog) handle(ctx context.Context, event events.Event) error {
	a.logger.Info("activity",
		zap.String("event", string(event.Type)),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload))
	return nil
}
