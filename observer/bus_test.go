package observer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	b := NewBus[int]()
	var gotA, gotB int
	b.Subscribe(func(v int) { gotA = v })
	b.Subscribe(func(v int) { gotB = v })

	b.Publish(42)

	require.Equal(t, 42, gotA)
	require.Equal(t, 42, gotB)
}

func TestBusUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus[int]()
	count := 0
	unsub := b.Subscribe(func(int) { count++ })

	b.Publish(1)
	unsub()
	b.Publish(2)

	require.Equal(t, 1, count)
}
