package abstraction

import "context"

type Reactor interface {
	Like(ctx context.Context, postID, userID int64, liked bool) error
	Comment(ctx context.Context, postID, userID int64, text string) (int64, error)
	RemoveComment(ctx context.Context, commentID, userID int64) error

	// Download bumps the download counter and returns the primary file URL.
	Download(ctx context.Context, postID int64) (string, error)
}
