package sms

import "context"

// Provider sends transactional SMS (owner booking alerts). Delivery is
// best-effort; callers must not fail their own operation on an SMS error.
type Provider interface {
	SendSMS(ctx context.Context, to, message string) error
}
