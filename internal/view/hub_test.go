package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversEventsToSubscribers(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	h.Notice("Order placed successfully!", Success)
	h.RefreshOrders()
	h.RefreshProducts()

	e := <-ch
	assert.Equal(t, TypeNotice, e.Type)
	assert.Equal(t, "Order placed successfully!", e.Message)
	assert.Equal(t, Success, e.Kind)

	assert.Equal(t, TypeRefreshOrders, (<-ch).Type)
	assert.Equal(t, TypeRefreshProducts, (<-ch).Type)
}

func TestHubCancelClosesChannel(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)

	// Cancelling twice is harmless, and publishing after cancel does not
	// panic.
	cancel()
	h.Notice("late", Error)
}

func TestHubDropsEventsForSlowSubscribers(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe()
	defer cancel()

	// Nobody is draining; the buffer fills and publish keeps returning.
	for i := 0; i < 100; i++ {
		h.RefreshOrders()
	}
	require.Equal(t, 16, len(ch))
}

func TestNopNotifier(t *testing.T) {
	var n Notifier = Nop{}
	n.RefreshProducts()
	n.RefreshOrders()
	n.Notice("ignored", Success)
}
