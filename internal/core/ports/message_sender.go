package ports

import "context"

// MessageSender delivers a text message and returns the provider message id.
type MessageSender interface {
	Send(ctx context.Context, to string, body string) (string, error)
}
