// Package view decouples the core flows from presentation: components
// ask an abstract Notifier to reload a list or flash a transient notice,
// and the hub fans those events out to whatever frontend is connected.
package view

// Kind classifies a notice the way the frontend styles its alerts.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
)

// Event types emitted through the hub.
const (
	TypeRefreshProducts = "refresh-products"
	TypeRefreshOrders   = "refresh-orders"
	TypeNotice          = "notice"
)

// Notifier is the surface the core flows talk to instead of the DOM.
type Notifier interface {
	RefreshProducts()
	RefreshOrders()
	Notice(message string, kind Kind)
}

// Event is one notification as delivered to a subscriber.
type Event struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Kind    Kind   `json:"kind,omitempty"`
}

// Nop discards every notification. Used by tools and as a test default.
type Nop struct{}

func (Nop) RefreshProducts()           {}
func (Nop) RefreshOrders()             {}
func (Nop) Notice(message string, kind Kind) {}
