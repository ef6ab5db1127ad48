package usecase

import (
	"context"
	"errors"
	"time"

	"modarc/internal/domain/model"
	"modarc/internal/domain/repository/database"
	"modarc/internal/domain/repository/index"
	"modarc/pkg/logger"
)

// Reactor handles the social mutations. Each one that changes the post's
// searchable projection re-upserts it, best effort.
type Reactor struct {
	writer    database.Writer
	retriever database.Retriever
	idx       index.Index
}

func NewReactor(writer database.Writer, retriever database.Retriever, idx index.Index) *Reactor {
	return &Reactor{
		writer:    writer,
		retriever: retriever,
		idx:       idx,
	}
}

func (r *Reactor) Like(ctx context.Context, postID, userID int64, liked bool) error {
	if err := r.writer.SetLike(ctx, postID, userID, liked); err != nil {
		return err
	}

	r.resync(ctx, postID)

	return nil
}

func (r *Reactor) Comment(ctx context.Context, postID, userID int64, text string) (int64, error) {
	id, err := r.writer.AddComment(ctx, &model.Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
		Time:   time.Now(),
	})
	if err != nil {
		return 0, err
	}

	r.resync(ctx, postID)

	return id, nil
}

func (r *Reactor) RemoveComment(ctx context.Context, commentID, userID int64) error {
	return r.writer.RemoveComment(ctx, commentID, userID)
}

func (r *Reactor) Download(ctx context.Context, postID int64) (string, error) {
	if err := r.writer.IncrementDownloads(ctx, postID); err != nil {
		return "", err
	}

	post, err := r.retriever.GetByID(ctx, postID)
	if err != nil {
		return "", err
	}
	if len(post.Files) == 0 {
		return "", errors.New("post has no files")
	}

	if err := r.idx.UpsertPost(ctx, projectionOf(post)); err != nil {
		logger.Error("failed to resync post projection", "post", postID, "err", err)
	}

	return post.Files[0], nil
}

func (r *Reactor) resync(ctx context.Context, postID int64) {
	post, err := r.retriever.GetByID(ctx, postID)
	if err != nil {
		logger.Error("failed to load post for projection resync", "post", postID, "err", err)

		return
	}

	if err := r.idx.UpsertPost(ctx, projectionOf(post)); err != nil {
		logger.Error("failed to resync post projection", "post", postID, "err", err)
	}
}
