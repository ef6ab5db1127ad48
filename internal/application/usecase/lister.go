package usecase

import (
	"context"

	"modarc/internal/domain/model"
	"modarc/internal/domain/repository/database"
	"modarc/internal/domain/repository/index"
	"modarc/pkg/logger"
)

// Lister serves the search read path. Hits whose post no longer exists
// relationally are dropped from the result and deleted from the index while
// the read is served; this lazy reconciliation is the only mechanism that
// heals index/store drift.
type Lister struct {
	idx       index.Index
	retriever database.Retriever
}

func NewLister(idx index.Index, retriever database.Retriever) *Lister {
	return &Lister{
		idx:       idx,
		retriever: retriever,
	}
}

func (l *Lister) SearchPosts(ctx context.Context, query, sort string, offset, limit int64) ([]model.PostDocument, error) {
	docs, err := l.idx.SearchPosts(ctx, query, sort, offset, limit)
	if err != nil {
		return nil, err
	}

	result := make([]model.PostDocument, 0, len(docs))
	for _, doc := range docs {
		exists, err := l.retriever.Exists(ctx, doc.ID)
		if err != nil {
			// Store hiccup: keep the hit rather than reconcile on bad data.
			logger.Error("failed to check post existence", "post", doc.ID, "err", err)
			result = append(result, doc)

			continue
		}

		if !exists {
			l.reconcile(ctx, doc.ID)

			continue
		}

		result = append(result, doc)
	}

	return result, nil
}

func (l *Lister) reconcile(ctx context.Context, postID int64) {
	logger.Info("reconciling dangling search document", "post", postID)

	if err := l.idx.DeletePost(ctx, postID); err != nil {
		logger.Error("failed to delete dangling post document", "post", postID, "err", err)
	}
	if err := l.idx.DeleteSongsByPost(ctx, postID); err != nil {
		logger.Error("failed to delete dangling song documents", "post", postID, "err", err)
	}
}
