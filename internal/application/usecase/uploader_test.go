package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modarc/internal/domain/dto"
	"modarc/internal/domain/entity"
	"modarc/internal/domain/model"
)

func stagedFiles(keys ...string) []entity.StagedFile {
	files := make([]entity.StagedFile, 0, len(keys))
	for _, key := range keys {
		files = append(files, entity.StagedFile{
			Key:  key,
			Path: "/stage/" + key,
			Size: 1,
		})
	}

	return files
}

func TestUploadInsert(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	idx := newFakeIndex()
	publisher := &fakePublisher{}
	remover := &fakeRemover{}
	jobs := &fakeJobs{}

	uploader := NewUploader(publisher, remover, store, store, idx, jobs)

	author := &model.User{ID: 5, Name: "alice"}
	manifest := &dto.UploadManifest{
		Name:      "Song Pack",
		Text:      "twelve songs",
		PostType:  1,
		Filenames: []string{"pack.zip", "extra.rar"},
		Image:     "https://cdn.example.org/cover.png",
	}

	id, err := uploader.Upload(context.Background(), author, manifest,
		stagedFiles("5/pack.zip", "5/extra.rar"))
	require.NoError(t, err)
	require.NotZero(t, id)

	post, err := store.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Song Pack", post.Name)
	assert.Equal(t, []string{
		"https://files.example.org/dl/pack.zip",
		"https://files.example.org/dl/extra.rar",
	}, post.Files)
	assert.Equal(t, []string{"5/pack.zip", "5/extra.rar"}, post.LocalFiles)
	require.Len(t, post.Files, len(post.LocalFiles))

	isAuthor, err := store.IsAuthor(context.Background(), id, author.ID)
	require.NoError(t, err)
	assert.True(t, isAuthor)

	doc, ok := idx.posts[id]
	require.True(t, ok, "projection must be upserted")
	assert.Equal(t, []string{"alice"}, doc.AuthorNames)

	assert.Equal(t, []string{"1"}, jobs.messages)
	assert.Empty(t, remover.removed)
}

func TestUploadPublishFailureCompensates(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	idx := newFakeIndex()
	publisher := &fakePublisher{failAt: 3}
	remover := &fakeRemover{}
	jobs := &fakeJobs{}

	uploader := NewUploader(publisher, remover, store, store, idx, jobs)

	_, err := uploader.Upload(context.Background(), &model.User{ID: 1},
		&dto.UploadManifest{Name: "p", Image: "https://cdn.example.org/i.png"},
		stagedFiles("1/a.zip", "1/b.zip", "1/c.zip"))
	require.Error(t, err)
	assert.True(t, ErrPublish.Has(err))

	// Both already-published files get compensating deletion.
	assert.Equal(t, []string{"1/a.zip", "1/b.zip"}, remover.removed)
	assert.Empty(t, store.posts, "nothing may be committed")
	assert.Empty(t, jobs.messages)
}

func TestUploadEditReplacesAndDropsOldFiles(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	idx := newFakeIndex()
	publisher := &fakePublisher{}
	remover := &fakeRemover{}
	jobs := &fakeJobs{}

	store.addPost(&model.Post{
		ID:         9,
		Name:       "old name",
		Files:      []string{"https://files.example.org/dl/old.zip", "https://files.example.org/dl/keep.zip"},
		LocalFiles: []string{"2/old.zip", "2/keep.zip"},
		Authors:    []model.User{{ID: 2, Name: "bob"}},
	})
	idx.songs[1] = model.SongDocument{ID: 1, PostID: 9, SongID: 1}

	uploader := NewUploader(publisher, remover, store, store, idx, jobs)

	editID := int64(9)
	id, err := uploader.Upload(context.Background(), &model.User{ID: 2, Name: "bob"},
		&dto.UploadManifest{
			ID:    &editID,
			Name:  "new name",
			Image: "https://cdn.example.org/i.png",
		},
		stagedFiles("2/keep.zip", "2/new.zip"))
	require.NoError(t, err)
	assert.Equal(t, editID, id)

	post, err := store.GetByID(context.Background(), editID)
	require.NoError(t, err)
	assert.Equal(t, "new name", post.Name)
	assert.Equal(t, []string{"2/keep.zip", "2/new.zip"}, post.LocalFiles)

	// Only the key the new list dropped is deleted remotely.
	assert.Equal(t, []string{"2/old.zip"}, remover.removed)

	// Stale song documents are purged; the queued rescan regenerates them.
	assert.Empty(t, idx.songs)
	assert.Equal(t, []string{"9"}, jobs.messages)
}

func TestUploadEditIdenticalFilesDeletesNothing(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	remover := &fakeRemover{}

	store.addPost(&model.Post{
		ID:         3,
		LocalFiles: []string{"1/a.zip"},
		Files:      []string{"https://files.example.org/dl/a.zip"},
		Authors:    []model.User{{ID: 1}},
	})

	uploader := NewUploader(&fakePublisher{}, remover, store, store, newFakeIndex(), &fakeJobs{})

	editID := int64(3)
	_, err := uploader.Upload(context.Background(), &model.User{ID: 1},
		&dto.UploadManifest{ID: &editID, Name: "same files", Image: "https://cdn.example.org/i.png"},
		stagedFiles("1/a.zip"))
	require.NoError(t, err)

	assert.Empty(t, remover.removed)
}

func TestUploadIndexAndQueueFailuresAreNotFatal(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	idx := newFakeIndex()
	idx.upsertErr = assert.AnError
	jobs := &fakeJobs{err: assert.AnError}

	uploader := NewUploader(&fakePublisher{}, &fakeRemover{}, store, store, idx, jobs)

	id, err := uploader.Upload(context.Background(), &model.User{ID: 1},
		&dto.UploadManifest{Name: "p", Image: "https://cdn.example.org/i.png"},
		stagedFiles("1/a.zip"))
	require.NoError(t, err, "commit succeeded, sync failures stay invisible")
	require.NotZero(t, id)
}

func TestDroppedKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		oldKeys []string
		newKeys []string
		want    []string
	}{
		{"all kept", []string{"a", "b"}, []string{"a", "b"}, nil},
		{"all dropped", []string{"a", "b"}, nil, []string{"a", "b"}},
		{"partial", []string{"a", "b", "c"}, []string{"b"}, []string{"a", "c"}},
		{"old empty", nil, []string{"a"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, droppedKeys(tt.oldKeys, tt.newKeys))
		})
	}
}
