package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_DeliversInSubscriptionOrder(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var order []string

	d.Subscribe(EventTicketCreated, func(ctx context.Context, e Event) error {
		order = append(order, "first")
		return nil
	})
	d.Subscribe(EventTicketCreated, func(ctx context.Context, e Event) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketCreated}))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestDispatcher_TypeIsolation(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	calls := 0

	d.Subscribe(EventCommentAdded, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketDeleted}))
	assert.Zero(t, calls)

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventCommentAdded}))
	assert.Equal(t, 1, calls)
}

func TestDispatcher_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	delivered := false

	d.Subscribe(EventUserLoggedIn, func(ctx context.Context, e Event) error {
		return errors.New("observer exploded")
	})
	d.Subscribe(EventUserLoggedIn, func(ctx context.Context, e Event) error {
		delivered = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserLoggedIn}))
	assert.True(t, delivered)
}

func TestDispatcher_PayloadPassedThrough(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var got Event

	d.Subscribe(EventTicketDeleted, func(ctx context.Context, e Event) error {
		got = e
		return nil
	})

	payload := TicketDeletedPayload{TicketID: "T-1", CommentsRemoved: 2}
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketDeleted, Payload: payload}))
	assert.Equal(t, payload, got.Payload)
}
