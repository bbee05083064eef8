// Package store provides the collection-oriented document database the
// storefront persists into: create, read, update, delete and
// equality-filtered listing over named collections.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names used by the storefront.
const (
	Users       = "users"
	Products    = "products"
	Orders      = "orders"
	Credentials = "credentials"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrMalformed = errors.New("malformed document")
)

// Record is one document as it came out of a collection.
type Record struct {
	ID   string
	Data json.RawMessage
}

// Decode unmarshals the document body into out. Shape problems surface
// as ErrMalformed so callers reject bad documents at the store boundary
// instead of trusting them at every call site.
func (r Record) Decode(out any) error {
	if err := json.Unmarshal(r.Data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, r.ID, err)
	}
	return nil
}

// Store is the document database interface. All implementations generate
// their own ids on Create and treat patches in Update as shallow merges
// into the stored document.
type Store interface {
	Create(ctx context.Context, collection string, doc any) (string, error)
	Get(ctx context.Context, collection, id string) (Record, error)
	ListAll(ctx context.Context, collection string) ([]Record, error)
	ListWhere(ctx context.Context, collection, field string, value any) ([]Record, error)
	Update(ctx context.Context, collection, id string, patch map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}
