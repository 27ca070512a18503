package eventbus_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fleetgrid/fleet-sdk/pkg/eventbus"
)

type createdEvent struct {
	ID string
}

func TestPublishMatchesHandlerSignature(t *testing.T) {
	bus := eventbus.NewEventPublisher(nil)

	var got []string
	bus.Subscribe(func(e *createdEvent) {
		got = append(got, e.ID)
	})

	bus.Publish(&createdEvent{ID: "a"})
	bus.Publish("not a createdEvent")

	require.Equal(t, []string{"a"}, got)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := eventbus.NewEventPublisher(nil)

	calls := 0
	handler := func(e *createdEvent) { calls++ }

	bus.Subscribe(handler)
	require.Equal(t, 1, bus.SubscribersCount())

	bus.Publish(&createdEvent{ID: "a"})
	bus.Unsubscribe(handler)
	bus.Publish(&createdEvent{ID: "b"})

	require.Equal(t, 1, calls)
	require.Equal(t, 0, bus.SubscribersCount())
}

func TestPanickingHandlerDoesNotStopSiblings(t *testing.T) {
	bus := eventbus.NewEventPublisher(nil)

	delivered := false
	bus.Subscribe(func(e *createdEvent) { panic("boom") })
	bus.Subscribe(func(e *createdEvent) { delivered = true })

	require.NotPanics(t, func() {
		bus.Publish(&createdEvent{ID: "a"})
	})
	require.True(t, delivered)
}
