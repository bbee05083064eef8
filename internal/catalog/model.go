package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Price is a decimal carried as a string on
// the wire to avoid rounding errors.
// swagger:model Product
type Product struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name" example:"Paneer Tikka Platter"`
	Description string          `json:"description" example:"Serves 10"`
	Price       decimal.Decimal `json:"price" example:"1499.00"`
	Category    string          `json:"category" example:"Starters"`
	AddedBy     string          `json:"addedBy"`
	AddedAt     time.Time       `json:"addedAt"`
}

// Validate rejects product documents that do not have the expected
// shape before they reach any render or cart path.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if p.Price.IsNegative() {
		return errors.New("price must be non-negative")
	}
	return nil
}

// CreateProductRequest is the admin payload for adding a product.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name        string          `json:"name" example:"Paneer Tikka Platter"`
	Description string          `json:"description" example:"Serves 10"`
	Price       decimal.Decimal `json:"price" example:"1499.00"`
	Category    string          `json:"category" example:"Starters"`
}
