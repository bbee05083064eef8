package order

// SubmitResponse confirms a placed order with its truncated identifier.
// swagger:model SubmitResponse
type SubmitResponse struct {
	OrderID      string `json:"order_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	ShortOrderID string `json:"short_order_id" example:"4e7d4e5c"`
	Total        string `json:"total" example:"1499.00"`
}

// UpdateStatusRequest is the admin payload for moving an order.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status Status `json:"status" example:"Processing"`
}
