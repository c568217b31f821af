package notification

import "context"

// Sender delivers a short text notice to a recipient. Delivery is
// best-effort by contract: callers log failures and move on.
type Sender interface {
	Send(ctx context.Context, recipient, text string) error
}
