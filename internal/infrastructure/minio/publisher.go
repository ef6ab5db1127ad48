package minio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

// Publisher is the S3-compatible durable-storage backend: it uploads the
// staged file under its staging key and derives the public URL from the
// configured base.
type Publisher struct {
	minioClient *minio.Client
	cfg         *PublisherConfig
	stageRoot   string
}

func NewPublisher(client *Client, cfg *PublisherConfig, stageRoot string) *Publisher {
	return &Publisher{
		minioClient: client.MinioClient,
		cfg:         cfg,
		stageRoot:   stageRoot,
	}
}

func (p *Publisher) Publish(ctx context.Context, localPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.Timeout)*time.Millisecond)
	defer cancel()

	object := objectName(p.stageRoot, localPath)
	_, err := p.minioClient.FPutObject(ctx, p.cfg.Bucket, object, localPath, minio.PutObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", object, err)
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(p.cfg.PublicURL, "/"), p.cfg.Bucket, object), nil
}

type Remover struct {
	minioClient *minio.Client
	cfg         *PublisherConfig
}

func NewRemover(client *Client, cfg *PublisherConfig) *Remover {
	return &Remover{
		minioClient: client.MinioClient,
		cfg:         cfg,
	}
}

// Remove deletes by staging key, which is already the object name.
func (r *Remover) Remove(ctx context.Context, localKey string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Timeout)*time.Millisecond)
	defer cancel()

	return r.minioClient.RemoveObject(ctx, r.cfg.Bucket, localKey, minio.RemoveObjectOptions{})
}

// objectName maps a staged file's absolute path back to its staging key so
// publish (by path) and delete (by key) address the same object.
func objectName(stageRoot, path string) string {
	rel, err := filepath.Rel(stageRoot, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(filepath.Base(path))
	}

	return filepath.ToSlash(rel)
}
