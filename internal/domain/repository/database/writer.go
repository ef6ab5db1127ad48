package database

import (
	"context"

	"modarc/internal/domain/model"
)

type Writer interface {
	// Insert creates a new post together with its author relation and
	// returns the generated id.
	Insert(ctx context.Context, post *model.Post, authorID int64) (int64, error)

	// Replace overwrites name, text, post_type, time, files, local_files
	// and images of an existing post wholesale.
	Replace(ctx context.Context, post *model.Post) error

	IncrementDownloads(ctx context.Context, postID int64) error
	SetLike(ctx context.Context, postID, userID int64, liked bool) error
	AddComment(ctx context.Context, comment *model.Comment) (int64, error)
	RemoveComment(ctx context.Context, commentID, userID int64) error
	AddDependency(ctx context.Context, postID, dependsOn int64) error
}
