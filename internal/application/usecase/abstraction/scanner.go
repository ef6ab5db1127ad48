package abstraction

import "context"

type Scanner interface {
	ScanPost(ctx context.Context, postID int64) error
}
