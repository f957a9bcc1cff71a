package ports

import "context"

// SubscriptionPicker displays an interactive single-choice picker over
// subscription nodes. Returns domain.ErrUserCancelled when the user
// dismisses it.
type SubscriptionPicker interface {
	Pick(ctx context.Context, nodes []Node) (Node, error)
}
