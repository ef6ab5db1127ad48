package usecase

import (
	"context"

	"modarc/internal/domain/repository/database"
	"modarc/internal/domain/repository/index"
	"modarc/internal/domain/repository/storage"
	"modarc/pkg/logger"
)

// Deleter destroys a post: remote files are released and index documents
// purged best-effort, then the relational row goes away (relations cascade).
type Deleter struct {
	retriever database.Retriever
	dbRemover database.Remover
	remover   storage.Remover
	idx       index.Index
}

func NewDeleter(retriever database.Retriever, dbRemover database.Remover,
	remover storage.Remover, idx index.Index,
) *Deleter {
	return &Deleter{
		retriever: retriever,
		dbRemover: dbRemover,
		remover:   remover,
		idx:       idx,
	}
}

func (d *Deleter) DeletePost(ctx context.Context, postID, userID int64) error {
	ok, err := d.retriever.IsAuthor(ctx, postID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnauthorized.New("user %d is not an author of post %d", userID, postID)
	}

	post, err := d.retriever.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	for _, key := range post.LocalFiles {
		if err := d.remover.Remove(ctx, key); err != nil {
			logger.Error("failed to release remote file of deleted post", "key", key, "err", err)
		}
	}

	if err := d.idx.DeletePost(ctx, postID); err != nil {
		logger.Error("failed to delete post document", "post", postID, "err", err)
	}
	if err := d.idx.DeleteSongsByPost(ctx, postID); err != nil {
		logger.Error("failed to delete song documents", "post", postID, "err", err)
	}

	return d.dbRemover.Remove(ctx, postID)
}
