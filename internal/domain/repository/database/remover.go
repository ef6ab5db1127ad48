package database

import "context"

type Remover interface {
	// Remove deletes the post row; relations cascade.
	Remove(ctx context.Context, id int64) error
}
