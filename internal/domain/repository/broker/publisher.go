package broker

import "context"

// Publisher enqueues detached work; the upload pipeline publishes a post id
// after its commit succeeds.
type Publisher interface {
	Publish(ctx context.Context, message string) error
}
