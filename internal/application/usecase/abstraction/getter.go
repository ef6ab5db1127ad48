package abstraction

import (
	"context"

	"modarc/internal/domain/model"
)

type Getter interface {
	GetPost(ctx context.Context, id int64) (*model.Post, error)
	GetPostSongs(ctx context.Context, id int64) ([]model.SongDocument, error)
}
