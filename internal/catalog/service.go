// Package catalog serves the product catalog: browsing for everyone,
// create/delete for administrators.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MrSyr3x/catering-system/internal/store"
	"github.com/MrSyr3x/catering-system/internal/view"
)

var ErrInvalidProduct = errors.New("invalid product")

type Service struct {
	store store.Store
	views view.Notifier
}

func NewService(st store.Store, views view.Notifier) *Service {
	return &Service{store: st, views: views}
}

// List returns every product in the catalog. A document that fails
// validation is dropped with a log line rather than breaking the whole
// listing.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	recs, err := s.store.ListAll(ctx, store.Products)
	if err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(recs))
	for _, rec := range recs {
		var p Product
		if err := rec.Decode(&p); err != nil {
			log.Printf("[catalog] skipping product %s: %v", rec.ID, err)
			continue
		}
		if err := p.Validate(); err != nil {
			log.Printf("[catalog] skipping product %s: %v", rec.ID, err)
			continue
		}
		p.ID = rec.ID
		out = append(out, p)
	}
	return out, nil
}

// Get loads one product, validated. The add-to-cart flow snapshots name
// and price from here, never from the client.
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	rec, err := s.store.Get(ctx, store.Products, id)
	if err != nil {
		return nil, err
	}
	var p Product
	if err := rec.Decode(&p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, store.ErrMalformed
	}
	p.ID = rec.ID
	return &p, nil
}

// Add creates a product on behalf of an administrator.
func (s *Service) Add(ctx context.Context, adminID string, req CreateProductRequest) (*Product, error) {
	p := Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		AddedBy:     adminID,
		AddedAt:     time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}
	id, err := s.store.Create(ctx, store.Products, p)
	if err != nil {
		s.views.Notice("Error adding product", view.Error)
		return nil, err
	}
	p.ID = id
	s.views.RefreshProducts()
	s.views.Notice("Product added successfully!", view.Success)
	return &p, nil
}

// Delete removes a product from the catalog. Carts that already hold a
// snapshot of it keep their line items.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, store.Products, id); err != nil {
		if err != store.ErrNotFound {
			s.views.Notice("Error deleting product", view.Error)
		}
		return err
	}
	s.views.RefreshProducts()
	s.views.Notice("Product deleted successfully!", view.Success)
	return nil
}
