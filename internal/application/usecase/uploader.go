package usecase

import (
	"context"
	"strconv"
	"time"

	"modarc/internal/domain/dto"
	"modarc/internal/domain/entity"
	"modarc/internal/domain/model"
	"modarc/internal/domain/repository/broker"
	"modarc/internal/domain/repository/database"
	"modarc/internal/domain/repository/index"
	"modarc/internal/domain/repository/storage"
	"modarc/pkg/logger"
)

// Uploader runs the publish-and-commit half of the pipeline once all files
// of a session are staged. Publishing is sequential with first-failure-stops
// semantics; the relational commit is the point of durability; everything
// after it is best effort.
type Uploader struct {
	publisher storage.Publisher
	remover   storage.Remover
	writer    database.Writer
	retriever database.Retriever
	idx       index.Index
	jobs      broker.Publisher
}

func NewUploader(publisher storage.Publisher, remover storage.Remover,
	writer database.Writer, retriever database.Retriever,
	idx index.Index, jobs broker.Publisher,
) *Uploader {
	return &Uploader{
		publisher: publisher,
		remover:   remover,
		writer:    writer,
		retriever: retriever,
		idx:       idx,
		jobs:      jobs,
	}
}

func (u *Uploader) Upload(ctx context.Context, author *model.User,
	manifest *dto.UploadManifest, files []entity.StagedFile,
) (int64, error) {
	urls, keys, err := u.publishAll(ctx, files)
	if err != nil {
		return 0, err
	}

	var post *model.Post
	if manifest.ID == nil {
		post, err = u.insert(ctx, author, manifest, urls, keys)
	} else {
		post, err = u.edit(ctx, *manifest.ID, manifest, urls, keys)
	}
	if err != nil {
		return 0, err
	}

	if err := u.idx.UpsertPost(ctx, projectionOf(post)); err != nil {
		logger.Error("failed to upsert post projection", "post", post.ID, "err", err)
	}

	if err := u.jobs.Publish(ctx, strconv.FormatInt(post.ID, 10)); err != nil {
		logger.Error("failed to enqueue archive scan", "post", post.ID, "err", err)
	}

	return post.ID, nil
}

// publishAll obtains a durable URL per staged file, in order. On failure the
// files already published in this session get compensating remote deletion
// before the session aborts; a failed compensation may leave an orphan, which
// is logged.
func (u *Uploader) publishAll(ctx context.Context, files []entity.StagedFile) ([]string, []string, error) {
	urls := make([]string, 0, len(files))
	keys := make([]string, 0, len(files))

	for _, f := range files {
		url, err := u.publisher.Publish(ctx, f.Path)
		if err != nil {
			u.unpublish(ctx, keys)

			return nil, nil, ErrPublish.Wrap(err)
		}
		urls = append(urls, url)
		keys = append(keys, f.Key)
	}

	return urls, keys, nil
}

func (u *Uploader) unpublish(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := u.remover.Remove(ctx, key); err != nil {
			logger.Error("failed to remove remote file after publish failed, orphan remains",
				"key", key, "err", err)
		}
	}
}

func (u *Uploader) insert(ctx context.Context, author *model.User,
	manifest *dto.UploadManifest, urls, keys []string,
) (*model.Post, error) {
	post := &model.Post{
		Name:       manifest.Name,
		Text:       manifest.Text,
		PostType:   manifest.PostType,
		Time:       time.Now(),
		Files:      urls,
		LocalFiles: keys,
		Images:     manifest.Images(),
		Authors:    []model.User{*author},
	}

	id, err := u.writer.Insert(ctx, post, author.ID)
	if err != nil {
		return nil, ErrCommit.Wrap(err)
	}
	post.ID = id

	return post, nil
}

// edit replaces the mutable fields wholesale, then requests remote deletion
// of every staging key the new list dropped and purges the stale song
// documents (the rescan regenerates them).
func (u *Uploader) edit(ctx context.Context, id int64,
	manifest *dto.UploadManifest, urls, keys []string,
) (*model.Post, error) {
	old, err := u.retriever.GetByID(ctx, id)
	if err != nil {
		return nil, ErrCommit.Wrap(err)
	}

	post := *old
	post.Name = manifest.Name
	post.Text = manifest.Text
	post.PostType = manifest.PostType
	post.Time = time.Now()
	post.Files = urls
	post.LocalFiles = keys
	post.Images = manifest.Images()

	if err := u.writer.Replace(ctx, &post); err != nil {
		return nil, ErrCommit.Wrap(err)
	}

	for _, key := range droppedKeys(old.LocalFiles, keys) {
		if err := u.remover.Remove(ctx, key); err != nil {
			logger.Error("failed to remove replaced remote file", "key", key, "err", err)
		}
	}

	if err := u.idx.DeleteSongsByPost(ctx, id); err != nil {
		logger.Error("failed to purge song documents before rescan", "post", id, "err", err)
	}

	return &post, nil
}

// droppedKeys is the set difference old − new, in old's order.
func droppedKeys(oldKeys, newKeys []string) []string {
	kept := make(map[string]struct{}, len(newKeys))
	for _, k := range newKeys {
		kept[k] = struct{}{}
	}

	var dropped []string
	for _, k := range oldKeys {
		if _, ok := kept[k]; !ok {
			dropped = append(dropped, k)
		}
	}

	return dropped
}
