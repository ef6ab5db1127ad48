package index

import (
	"context"

	"modarc/internal/domain/model"
)

// Index is the narrow surface over the search store. The index is a cache of
// the relational store, never authoritative; every caller treats failures as
// advisory (log and move on).
type Index interface {
	UpsertPost(ctx context.Context, doc *model.PostDocument) error
	UpsertSongs(ctx context.Context, docs []model.SongDocument) error

	SearchPosts(ctx context.Context, query, sort string, offset, limit int64) ([]model.PostDocument, error)
	SongsByPost(ctx context.Context, postID int64) ([]model.SongDocument, error)

	DeletePost(ctx context.Context, postID int64) error
	DeleteSongsByPost(ctx context.Context, postID int64) error
}
