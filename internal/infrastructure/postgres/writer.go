package postgres

import (
	"context"
	"fmt"

	"modarc/internal/domain/model"
)

type PostWriter struct {
	db *Database
}

func NewPostWriter(db *Database) *PostWriter {
	return &PostWriter{db: db}
}

func (w *PostWriter) Insert(ctx context.Context, post *model.Post, authorID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	tx, err := w.db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin insert post: %w", err)
	}
	defer tx.Rollback(ctx) //nolint

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO posts (name, text, post_type, time, files, local_files, images, explicit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		post.Name, post.Text, post.PostType, post.Time,
		post.Files, post.LocalFiles, post.Images, post.Explicit,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert post: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO post_authors (post_id, user_id) VALUES ($1, $2)`, id, authorID); err != nil {
		return 0, fmt.Errorf("insert author relation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return id, nil
}

func (w *PostWriter) Replace(ctx context.Context, post *model.Post) error {
	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	tag, err := w.db.Pool.Exec(ctx, `
		UPDATE posts
		SET name = $2, text = $3, post_type = $4, time = $5,
		    files = $6, local_files = $7, images = $8
		WHERE id = $1`,
		post.ID, post.Name, post.Text, post.PostType, post.Time,
		post.Files, post.LocalFiles, post.Images,
	)
	if err != nil {
		return fmt.Errorf("replace post: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("replace post: unexpected rows affected: %d", tag.RowsAffected())
	}

	return nil
}

func (w *PostWriter) IncrementDownloads(ctx context.Context, postID int64) error {
	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	_, err := w.db.Pool.Exec(ctx,
		`UPDATE posts SET download_count = download_count + 1 WHERE id = $1`, postID)

	return err
}

func (w *PostWriter) SetLike(ctx context.Context, postID, userID int64, liked bool) error {
	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	if liked {
		_, err := w.db.Pool.Exec(ctx, `
			INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, postID, userID)

		return err
	}

	_, err := w.db.Pool.Exec(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)

	return err
}

func (w *PostWriter) AddComment(ctx context.Context, comment *model.Comment) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	var id int64
	err := w.db.Pool.QueryRow(ctx, `
		INSERT INTO comments (post_id, user_id, text, time)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		comment.PostID, comment.UserID, comment.Text, comment.Time,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert comment: %w", err)
	}

	return id, nil
}

func (w *PostWriter) RemoveComment(ctx context.Context, commentID, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	tag, err := w.db.Pool.Exec(ctx,
		`DELETE FROM comments WHERE id = $1 AND user_id = $2`, commentID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("remove comment: not found or not owned")
	}

	return nil
}

func (w *PostWriter) AddDependency(ctx context.Context, postID, dependsOn int64) error {
	ctx, cancel := context.WithTimeout(ctx, w.db.QueryTimeout)
	defer cancel()

	_, err := w.db.Pool.Exec(ctx, `
		INSERT INTO post_dependencies (post_id, depends_on) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, postID, dependsOn)

	return err
}
