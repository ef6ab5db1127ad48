package abstraction

import "context"

type Deleter interface {
	DeletePost(ctx context.Context, postID, userID int64) error
}
