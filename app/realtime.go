package app

import "context"

// ChangeOp names the kind of row change a notification reports.
type ChangeOp string

const (
	OpInsert ChangeOp = "INSERT"
	OpUpdate ChangeOp = "UPDATE"
	OpDelete ChangeOp = "DELETE"
)

// ChangeEvent is one notification from the change feed. Consumers only rely on
// its arrival; the payload is informational.
type ChangeEvent struct {
	Op     ChangeOp `json:"op"`
	PostID string   `json:"id"`
}

// ChangeFeed opens standing subscriptions to changes on the posts table.
type ChangeFeed interface {
	Subscribe(ctx context.Context) (Subscription, error)
}

// Subscription is a live change channel.
//
// Events is closed when the subscription ends; Err then reports why (nil after Close).
type Subscription interface {
	Events() <-chan ChangeEvent
	Err() error
	Close() error
}
