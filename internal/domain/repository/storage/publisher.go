package storage

import "context"

// Publisher turns a staged file into a durable, publicly resolvable URL.
type Publisher interface {
	Publish(ctx context.Context, localPath string) (string, error)
}
