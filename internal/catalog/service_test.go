package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSyr3x/catering-system/internal/store"
	"github.com/MrSyr3x/catering-system/internal/view"
)

// recorder collects notifier calls for assertions.
type recorder struct {
	refreshProducts int
	refreshOrders   int
	notices         []view.Event
}

func (r *recorder) RefreshProducts() { r.refreshProducts++ }
func (r *recorder) RefreshOrders()   { r.refreshOrders++ }
func (r *recorder) Notice(msg string, kind view.Kind) {
	r.notices = append(r.notices, view.Event{Type: view.TypeNotice, Message: msg, Kind: kind})
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestService() (*Service, *store.Memory, *recorder) {
	st := store.NewMemory()
	rec := &recorder{}
	return NewService(st, rec), st, rec
}

func createReq() CreateProductRequest {
	return CreateProductRequest{
		Name:        "Paneer Tikka Platter",
		Description: "Serves 10",
		Price:       d("1499.00"),
		Category:    "Starters",
	}
}

func TestAddAndList(t *testing.T) {
	ctx := context.Background()
	svc, _, rec := newTestService()

	p, err := svc.Add(ctx, "admin-1", createReq())
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	assert.Equal(t, "admin-1", p.AddedBy)
	assert.False(t, p.AddedAt.IsZero())

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, p.ID, items[0].ID)
	assert.True(t, items[0].Price.Equal(d("1499.00")))

	assert.Equal(t, 1, rec.refreshProducts)
	require.NotEmpty(t, rec.notices)
	assert.Equal(t, view.Success, rec.notices[0].Kind)
}

func TestAddRejectsInvalidProducts(t *testing.T) {
	svc, st, _ := newTestService()

	req := createReq()
	req.Name = "  "
	_, err := svc.Add(context.Background(), "admin-1", req)
	assert.ErrorIs(t, err, ErrInvalidProduct)

	req = createReq()
	req.Price = d("-1")
	_, err = svc.Add(context.Background(), "admin-1", req)
	assert.ErrorIs(t, err, ErrInvalidProduct)

	// Nothing was written.
	recs, err := st.ListAll(context.Background(), store.Products)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestZeroPriceIsAllowed(t *testing.T) {
	svc, _, _ := newTestService()
	req := createReq()
	req.Price = decimal.Zero
	_, err := svc.Add(context.Background(), "admin-1", req)
	assert.NoError(t, err)
}

func TestListSkipsMalformedDocuments(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newTestService()

	_, err := svc.Add(ctx, "admin-1", createReq())
	require.NoError(t, err)

	// A document whose price is not numeric and one missing its name go
	// straight into the store behind the service's back.
	_, err = st.Create(ctx, store.Products, json.RawMessage(`{"name":"Broken","price":"not a number"}`))
	require.NoError(t, err)
	_, err = st.Create(ctx, store.Products, map[string]any{"price": "10.00", "category": "Mains"})
	require.NoError(t, err)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Paneer Tikka Platter", items[0].Name)
}

func TestGetSnapshotsFromStore(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()
	created, err := svc.Add(ctx, "admin-1", createReq())
	require.NoError(t, err)

	p, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, p.ID)
	assert.True(t, p.Price.Equal(d("1499.00")))

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, _, rec := newTestService()
	p, err := svc.Add(ctx, "admin-1", createReq())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))
	items, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 2, rec.refreshProducts) // add + delete

	assert.ErrorIs(t, svc.Delete(ctx, p.ID), store.ErrNotFound)
}
