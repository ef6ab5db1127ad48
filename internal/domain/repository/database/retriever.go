package database

import (
	"context"

	"modarc/internal/domain/model"
)

type Retriever interface {
	// GetByID loads the full post: row, authors, dependencies, comments
	// and like count.
	GetByID(ctx context.Context, id int64) (*model.Post, error)

	Exists(ctx context.Context, id int64) (bool, error)
	IsAuthor(ctx context.Context, postID, userID int64) (bool, error)
}

type UserRetriever interface {
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}
