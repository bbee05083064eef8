package view

import "sync"

// Hub implements Notifier by fanning events out to subscribers. Slow
// subscribers drop events rather than block the flow that produced them;
// a dashboard that missed a refresh signal just reloads on the next one.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe returns a channel of events and a cancel function that must
// be called when the subscriber goes away.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) RefreshProducts() { h.publish(Event{Type: TypeRefreshProducts}) }

func (h *Hub) RefreshOrders() { h.publish(Event{Type: TypeRefreshOrders}) }

func (h *Hub) Notice(message string, kind Kind) {
	h.publish(Event{Type: TypeNotice, Message: message, Kind: kind})
}

func (h *Hub) publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
