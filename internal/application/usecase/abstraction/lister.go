package abstraction

import (
	"context"

	"modarc/internal/domain/model"
)

type Lister interface {
	SearchPosts(ctx context.Context, query, sort string, offset, limit int64) ([]model.PostDocument, error)
}
