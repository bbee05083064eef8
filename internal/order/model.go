package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrSyr3x/catering-system/internal/cart"
)

// Status of an order. Administrators may set any status at any time;
// there is no transition graph.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Order is a frozen cart snapshot. Once written, only Status changes.
// Total is the sum of the item price snapshots at creation time and is
// never recomputed.
// swagger:model Order
type Order struct {
	ID        string          `json:"id,omitempty"`
	UserID    string          `json:"userId"`
	UserEmail string          `json:"userEmail"`
	Items     []cart.Item     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    Status          `json:"status"`
	OrderDate time.Time       `json:"orderDate"`
}

// Validate rejects order documents that do not have the expected shape.
func (o *Order) Validate() error {
	if o.UserID == "" {
		return errors.New("userId is required")
	}
	if !o.Status.Valid() {
		return errors.New("unknown status " + string(o.Status))
	}
	return nil
}
