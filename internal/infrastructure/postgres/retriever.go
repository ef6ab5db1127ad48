package postgres

import (
	"context"
	"fmt"

	"modarc/internal/domain/model"
)

type PostRetriever struct {
	db *Database
}

func NewPostRetriever(db *Database) *PostRetriever {
	return &PostRetriever{db: db}
}

func (r *PostRetriever) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	post := &model.Post{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT p.id, p.name, p.text, p.post_type, p.time,
		       p.files, p.local_files, p.images, p.download_count, p.explicit,
		       (SELECT count(*) FROM post_likes l WHERE l.post_id = p.id)
		FROM posts p
		WHERE p.id = $1`, id,
	).Scan(&post.ID, &post.Name, &post.Text, &post.PostType, &post.Time,
		&post.Files, &post.LocalFiles, &post.Images, &post.DownloadCount,
		&post.Explicit, &post.LikeCount)
	if err != nil {
		return nil, fmt.Errorf("select post: %w", err)
	}

	if post.Authors, err = r.authors(ctx, id); err != nil {
		return nil, err
	}
	if post.Dependencies, err = r.dependencies(ctx, id); err != nil {
		return nil, err
	}
	if post.Comments, err = r.comments(ctx, id); err != nil {
		return nil, err
	}

	return post, nil
}

func (r *PostRetriever) Exists(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	var exists bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, id).Scan(&exists)

	return exists, err
}

func (r *PostRetriever) IsAuthor(ctx context.Context, postID, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.db.QueryTimeout)
	defer cancel()

	var ok bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM post_authors WHERE post_id = $1 AND user_id = $2
		)`, postID, userID).Scan(&ok)

	return ok, err
}

func (r *PostRetriever) authors(ctx context.Context, postID int64) ([]model.User, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT u.id, u.name, u.avatar
		FROM users u
		JOIN post_authors a ON a.user_id = u.id
		WHERE a.post_id = $1
		ORDER BY u.id`, postID)
	if err != nil {
		return nil, fmt.Errorf("select authors: %w", err)
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Avatar); err != nil {
			return nil, err
		}
		result = append(result, u)
	}

	return result, rows.Err()
}

func (r *PostRetriever) dependencies(ctx context.Context, postID int64) ([]int64, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT depends_on FROM post_dependencies WHERE post_id = $1 ORDER BY depends_on`, postID)
	if err != nil {
		return nil, fmt.Errorf("select dependencies: %w", err)
	}
	defer rows.Close()

	var result []int64
	for rows.Next() {
		var dep int64
		if err := rows.Scan(&dep); err != nil {
			return nil, err
		}
		result = append(result, dep)
	}

	return result, rows.Err()
}

func (r *PostRetriever) comments(ctx context.Context, postID int64) ([]model.Comment, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, post_id, user_id, text, time
		FROM comments WHERE post_id = $1 ORDER BY time`, postID)
	if err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}
	defer rows.Close()

	var result []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.Time); err != nil {
			return nil, err
		}
		result = append(result, c)
	}

	return result, rows.Err()
}
