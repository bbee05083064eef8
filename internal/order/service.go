// Package order turns a session cart into a persisted order and serves
// order history for customers and administrators.
package order

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrSyr3x/catering-system/internal/events"
	"github.com/MrSyr3x/catering-system/internal/session"
	"github.com/MrSyr3x/catering-system/internal/store"
	"github.com/MrSyr3x/catering-system/internal/view"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrSubmitInFlight = errors.New("order submission already in progress")
	ErrUnknownStatus  = errors.New("unknown order status")
	ErrNotFound       = store.ErrNotFound
)

type Service struct {
	store  store.Store
	pub    events.Publisher
	views  view.Notifier
	submit sync.Map // session token -> in-flight marker
}

func NewService(st store.Store, pub events.Publisher, views view.Notifier) *Service {
	return &Service{store: st, pub: pub, views: views}
}

// Submit freezes the session cart into a new Pending order. The cart is
// cleared only after the write is confirmed; on any failure it is left
// exactly as it was, ready for a manual retry. A second submit for the
// same session while one is in flight gets ErrSubmitInFlight, so rapid
// double-clicks cannot create duplicate orders.
func (s *Service) Submit(ctx context.Context, sess *session.Session) (*Order, error) {
	if _, busy := s.submit.LoadOrStore(sess.Token, struct{}{}); busy {
		return nil, ErrSubmitInFlight
	}
	defer s.submit.Delete(sess.Token)

	items := sess.Cart.Items()
	if len(items) == 0 {
		s.views.Notice("Your cart is empty!", view.Error)
		return nil, ErrEmptyCart
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price)
	}
	o := &Order{
		UserID:    sess.UserID,
		UserEmail: sess.Email,
		Items:     items,
		Total:     total,
		Status:    StatusPending,
		OrderDate: time.Now().UTC(),
	}
	id, err := s.store.Create(ctx, store.Orders, o)
	if err != nil {
		s.views.Notice("Error placing order. Please try again.", view.Error)
		return nil, err
	}
	o.ID = id

	sess.Cart.Clear()
	s.pub.Publish(events.OrderPlaced, o)
	s.views.RefreshOrders()
	s.views.Notice("Order placed successfully! Order ID: "+ShortID(id), view.Success)
	return o, nil
}

// ListByUser returns the orders of one user, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	recs, err := s.store.ListWhere(ctx, store.Orders, "userId", userID)
	if err != nil {
		return nil, err
	}
	return decodeOrders(recs), nil
}

// ListAll returns every order, newest first. Admin only.
func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	recs, err := s.store.ListAll(ctx, store.Orders)
	if err != nil {
		return nil, err
	}
	return decodeOrders(recs), nil
}

// UpdateStatus moves an order to any of the known statuses. No
// transition graph is enforced, only that the target status exists.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !status.Valid() {
		return ErrUnknownStatus
	}
	if err := s.store.Update(ctx, store.Orders, id, map[string]any{"status": status}); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.views.Notice("Error updating status", view.Error)
		}
		return err
	}
	s.pub.Publish(events.OrderStatusChanged, map[string]any{"orderId": id, "status": status})
	s.views.RefreshOrders()
	s.views.Notice("Order status updated!", view.Success)
	return nil
}

// ShortID is the truncated order identifier shown in confirmations.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func decodeOrders(recs []store.Record) []Order {
	out := make([]Order, 0, len(recs))
	for _, rec := range recs {
		var o Order
		if err := rec.Decode(&o); err != nil {
			log.Printf("[order] skipping order %s: %v", rec.ID, err)
			continue
		}
		if err := o.Validate(); err != nil {
			log.Printf("[order] skipping order %s: %v", rec.ID, err)
			continue
		}
		o.ID = rec.ID
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderDate.After(out[j].OrderDate)
	})
	return out
}
