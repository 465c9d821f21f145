package payment

import "context"

// Gateway creates payment orders for online bookings. The client completes
// the payment against the returned order; capture happens gateway-side.
type Gateway interface {
	CreateOrder(ctx context.Context, request *OrderRequest) (*Order, error)
}

type OrderRequest struct {
	Amount   float64           `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

type Order struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Status   string  `json:"status"`
}
