package postgres

import (
	"context"
	"fmt"
)

type PostRemover struct {
	db *Database
}

func NewPostRemover(db *Database) *PostRemover {
	return &PostRemover{db: db}
}

func (r *PostRemover) Remove(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("delete post: %d not found", id)
	}

	return nil
}
