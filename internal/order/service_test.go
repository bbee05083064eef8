package order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSyr3x/catering-system/internal/cart"
	"github.com/MrSyr3x/catering-system/internal/events"
	"github.com/MrSyr3x/catering-system/internal/session"
	"github.com/MrSyr3x/catering-system/internal/store"
	"github.com/MrSyr3x/catering-system/internal/view"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testSession() *session.Session {
	return &session.Session{
		Token:    "tok-1",
		UserID:   "u1",
		Email:    "u1@example.com",
		UserType: "customer",
		Cart:     cart.New(),
	}
}

// pubRecorder collects published events.
type pubRecorder struct {
	mu    sync.Mutex
	types []string
}

func (p *pubRecorder) Publish(eventType string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, eventType)
}

func (p *pubRecorder) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.types...)
}

// noticeRecorder collects notifier calls.
type noticeRecorder struct {
	mu            sync.Mutex
	refreshOrders int
	notices       []view.Event
}

func (r *noticeRecorder) RefreshProducts() {}
func (r *noticeRecorder) RefreshOrders() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshOrders++
}
func (r *noticeRecorder) Notice(msg string, kind view.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, view.Event{Type: view.TypeNotice, Message: msg, Kind: kind})
}

// failingStore rejects writes to the orders collection.
type failingStore struct {
	store.Store
}

func (f *failingStore) Create(ctx context.Context, collection string, doc any) (string, error) {
	return "", errors.New("store unreachable")
}

// blockingStore parks Create until released, to hold a submission in
// flight.
type blockingStore struct {
	store.Store
	entered chan struct{}
	release chan struct{}
}

func (b *blockingStore) Create(ctx context.Context, collection string, doc any) (string, error) {
	close(b.entered)
	<-b.release
	return b.Store.Create(ctx, collection, doc)
}

func TestSubmitEmptyCartWritesNothing(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	rec := &noticeRecorder{}
	svc := NewService(st, &pubRecorder{}, rec)

	_, err := svc.Submit(ctx, testSession())
	assert.ErrorIs(t, err, ErrEmptyCart)

	recs, err := st.ListAll(ctx, store.Orders)
	require.NoError(t, err)
	assert.Empty(t, recs)
	require.NotEmpty(t, rec.notices)
	assert.Equal(t, view.Error, rec.notices[0].Kind)
}

func TestSubmitHappyPath(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	pub := &pubRecorder{}
	rec := &noticeRecorder{}
	svc := NewService(st, pub, rec)

	sess := testSession()
	sess.Cart.Add("p1", "Veg Thali", d("250"))

	o, err := svc.Submit(ctx, sess)
	require.NoError(t, err)
	require.NotEmpty(t, o.ID)
	assert.Equal(t, "u1", o.UserID)
	assert.Equal(t, "u1@example.com", o.UserEmail)
	assert.Equal(t, StatusPending, o.Status)
	require.Len(t, o.Items, 1)
	assert.True(t, o.Total.Equal(d("250")))
	assert.False(t, o.OrderDate.IsZero())

	// Cart cleared only after the confirmed write.
	assert.Equal(t, 0, sess.Cart.Len())

	// Exactly one order document landed in the store.
	recs, err := st.ListAll(ctx, store.Orders)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	var stored Order
	require.NoError(t, recs[0].Decode(&stored))
	assert.True(t, stored.Total.Equal(d("250")))

	assert.Equal(t, []string{events.OrderPlaced}, pub.Types())
	assert.Equal(t, 1, rec.refreshOrders)
	require.NotEmpty(t, rec.notices)
	assert.Contains(t, rec.notices[0].Message, ShortID(o.ID))
}

func TestTotalEqualsItemSumAtCreation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory(), &pubRecorder{}, &noticeRecorder{})

	sess := testSession()
	sess.Cart.Add("p1", "Biryani", d("120"))
	sess.Cart.Add("p2", "Lassi", d("80"))
	sess.Cart.Add("p2", "Lassi", d("80"))

	o, err := svc.Submit(ctx, sess)
	require.NoError(t, err)
	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Price)
	}
	assert.True(t, o.Total.Equal(sum))
	assert.True(t, o.Total.Equal(d("280")))
}

func TestSecondSubmitAfterSuccessIsEmptyCart(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemory(), &pubRecorder{}, &noticeRecorder{})

	sess := testSession()
	sess.Cart.Add("p1", "Veg Thali", d("250"))

	_, err := svc.Submit(ctx, sess)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, sess)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmitFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	pub := &pubRecorder{}
	rec := &noticeRecorder{}
	svc := NewService(&failingStore{Store: store.NewMemory()}, pub, rec)

	sess := testSession()
	sess.Cart.Add("p1", "Biryani", d("120"))
	sess.Cart.Add("p2", "Lassi", d("80"))

	_, err := svc.Submit(ctx, sess)
	require.Error(t, err)

	// Cart untouched, nothing published, generic failure notice.
	assert.Equal(t, 2, sess.Cart.Len())
	assert.True(t, sess.Cart.Total().Equal(d("200")))
	assert.Empty(t, pub.Types())
	require.NotEmpty(t, rec.notices)
	assert.Equal(t, view.Error, rec.notices[0].Kind)
}

func TestConcurrentSubmitIsSingleFlight(t *testing.T) {
	ctx := context.Background()
	bs := &blockingStore{
		Store:   store.NewMemory(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewService(bs, &pubRecorder{}, &noticeRecorder{})

	sess := testSession()
	sess.Cart.Add("p1", "Veg Thali", d("250"))

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, sess)
		done <- err
	}()

	select {
	case <-bs.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first submit never reached the store")
	}

	// While the first write is in flight the same session cannot submit
	// again, even though the cart still looks non-empty.
	_, err := svc.Submit(ctx, sess)
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(bs.release)
	require.NoError(t, <-done)

	recs, err := bs.Store.ListAll(ctx, store.Orders)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestListByUserFiltersAndSortsNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewService(st, &pubRecorder{}, &noticeRecorder{})

	old := Order{UserID: "u1", UserEmail: "u1@example.com", Status: StatusPending,
		Total: d("10"), OrderDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := Order{UserID: "u1", UserEmail: "u1@example.com", Status: StatusCompleted,
		Total: d("20"), OrderDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}
	other := Order{UserID: "u2", UserEmail: "u2@example.com", Status: StatusPending,
		Total: d("30"), OrderDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	for _, o := range []Order{old, newer, other} {
		_, err := st.Create(ctx, store.Orders, o)
		require.NoError(t, err)
	}

	got, err := svc.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, StatusCompleted, got[0].Status)
	assert.Equal(t, StatusPending, got[1].Status)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "u2", all[0].UserID)
}

func TestListSkipsMalformedOrders(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewService(st, &pubRecorder{}, &noticeRecorder{})

	_, err := st.Create(ctx, store.Orders, map[string]any{"userId": "u1", "status": "Teleported"})
	require.NoError(t, err)
	_, err = st.Create(ctx, store.Orders, Order{UserID: "u1", Status: StatusPending, Total: d("10"), OrderDate: time.Now()})
	require.NoError(t, err)

	got, err := svc.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	pub := &pubRecorder{}
	svc := NewService(st, pub, &noticeRecorder{})

	id, err := st.Create(ctx, store.Orders, Order{UserID: "u1", Status: StatusPending, Total: d("10"), OrderDate: time.Now()})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, id, StatusProcessing))
	rec, err := st.Get(ctx, store.Orders, id)
	require.NoError(t, err)
	var stored Order
	require.NoError(t, rec.Decode(&stored))
	assert.Equal(t, StatusProcessing, stored.Status)

	// Any-to-any transitions are allowed, including backwards.
	require.NoError(t, svc.UpdateStatus(ctx, id, StatusPending))

	assert.Equal(t, []string{events.OrderStatusChanged, events.OrderStatusChanged}, pub.Types())
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	svc := NewService(st, &pubRecorder{}, &noticeRecorder{})

	id, err := st.Create(ctx, store.Orders, Order{UserID: "u1", Status: StatusPending, Total: d("10"), OrderDate: time.Now()})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UpdateStatus(ctx, id, Status("Teleported")), ErrUnknownStatus)

	rec, err := st.Get(ctx, store.Orders, id)
	require.NoError(t, err)
	var stored Order
	require.NoError(t, rec.Decode(&stored))
	assert.Equal(t, StatusPending, stored.Status)
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	svc := NewService(store.NewMemory(), &pubRecorder{}, &noticeRecorder{})
	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), "missing", StatusCompleted), ErrNotFound)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "4e7d4e5c", ShortID("4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"))
	assert.Equal(t, "abc", ShortID("abc"))
}
