package storage

import "context"

// Remover deletes a previously published file by its staging key.
type Remover interface {
	Remove(ctx context.Context, localKey string) error
}
