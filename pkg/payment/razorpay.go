package payment

import (
	"context"
	"fmt"

	"github.com/razorpay/razorpay-go"
)

type RazorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
	}
}

func (r *RazorpayGateway) CreateOrder(ctx context.Context, request *OrderRequest) (*Order, error) {
	notes := map[string]interface{}{}
	for k, v := range request.Notes {
		notes[k] = v
	}

	orderData := map[string]interface{}{
		"amount":   int(request.Amount * 100), // amount in paise
		"currency": request.Currency,
		"receipt":  request.Receipt,
		"notes":    notes,
	}

	order, err := r.client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	id, _ := order["id"].(string)
	status, _ := order["status"].(string)

	return &Order{
		ID:       id,
		Amount:   request.Amount,
		Currency: request.Currency,
		Status:   status,
	}, nil
}
