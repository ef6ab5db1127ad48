package usecase

import (
	"context"
	"errors"

	"modarc/internal/domain/model"
	"modarc/internal/domain/repository/database"
	"modarc/internal/domain/repository/index"
)

// Getter serves post detail from the relational store; song metadata comes
// from the index (it exists nowhere else).
type Getter struct {
	retriever database.Retriever
	idx       index.Index
}

func NewGetter(retriever database.Retriever, idx index.Index) *Getter {
	return &Getter{
		retriever: retriever,
		idx:       idx,
	}
}

func (g *Getter) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	post, err := g.retriever.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("post not found")
	}

	return post, nil
}

func (g *Getter) GetPostSongs(ctx context.Context, id int64) ([]model.SongDocument, error) {
	return g.idx.SongsByPost(ctx, id)
}
