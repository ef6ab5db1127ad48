package postgres

import (
	"context"
	"fmt"

	"modarc/internal/domain/model"
)

type UserRetriever struct {
	db *Database
}

func NewUserRetriever(db *Database) *UserRetriever {
	return &UserRetriever{db: db}
}

func (r *UserRetriever) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	user := &model.User{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, name, avatar FROM users WHERE id = $1`, id,
	).Scan(&user.ID, &user.Name, &user.Avatar)
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}

	return user, nil
}
