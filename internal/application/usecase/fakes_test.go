package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"modarc/internal/domain/model"
	"modarc/internal/domain/repository/stage"
)

// fakeStore is an in-memory stand-in for the relational store.
type fakeStore struct {
	mu      sync.Mutex
	nextID  int64
	posts   map[int64]*model.Post
	users   map[int64]*model.User
	authors map[int64]map[int64]struct{}

	insertErr  error
	replaceErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:  1,
		posts:   map[int64]*model.Post{},
		users:   map[int64]*model.User{},
		authors: map[int64]map[int64]struct{}{},
	}
}

func (s *fakeStore) addPost(post *model.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts[post.ID] = post
	if post.ID >= s.nextID {
		s.nextID = post.ID + 1
	}
	for _, a := range post.Authors {
		s.setAuthor(post.ID, a.ID)
	}
}

func (s *fakeStore) setAuthor(postID, userID int64) {
	if s.authors[postID] == nil {
		s.authors[postID] = map[int64]struct{}{}
	}
	s.authors[postID][userID] = struct{}{}
}

func (s *fakeStore) Insert(_ context.Context, post *model.Post, authorID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.insertErr != nil {
		return 0, s.insertErr
	}

	id := s.nextID
	s.nextID++
	copied := *post
	copied.ID = id
	s.posts[id] = &copied
	s.setAuthor(id, authorID)

	return id, nil
}

func (s *fakeStore) Replace(_ context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.replaceErr != nil {
		return s.replaceErr
	}
	if _, ok := s.posts[post.ID]; !ok {
		return errors.New("post does not exist")
	}

	copied := *post
	s.posts[post.ID] = &copied

	return nil
}

func (s *fakeStore) IncrementDownloads(_ context.Context, postID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return errors.New("post does not exist")
	}
	post.DownloadCount++

	return nil
}

func (s *fakeStore) SetLike(_ context.Context, postID, _ int64, liked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return errors.New("post does not exist")
	}
	if liked {
		post.LikeCount++
	} else if post.LikeCount > 0 {
		post.LikeCount--
	}

	return nil
}

func (s *fakeStore) AddComment(_ context.Context, comment *model.Comment) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[comment.PostID]
	if !ok {
		return 0, errors.New("post does not exist")
	}

	id := s.nextID
	s.nextID++
	copied := *comment
	copied.ID = id
	post.Comments = append(post.Comments, copied)

	return id, nil
}

func (s *fakeStore) RemoveComment(_ context.Context, commentID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, post := range s.posts {
		for i, c := range post.Comments {
			if c.ID != commentID {
				continue
			}
			if c.UserID != userID {
				return errors.New("comment is not owned by user")
			}
			post.Comments = append(post.Comments[:i], post.Comments[i+1:]...)

			return nil
		}
	}

	return errors.New("comment does not exist")
}

func (s *fakeStore) AddDependency(_ context.Context, postID, dependsOn int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[postID]
	if !ok {
		return errors.New("post does not exist")
	}
	post.Dependencies = append(post.Dependencies, dependsOn)

	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, errors.New("post does not exist")
	}
	copied := *post

	return &copied, nil
}

func (s *fakeStore) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.posts[id]

	return ok, nil
}

func (s *fakeStore) IsAuthor(_ context.Context, postID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.authors[postID][userID]

	return ok, nil
}

func (s *fakeStore) Remove(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return errors.New("post does not exist")
	}
	delete(s.posts, id)
	delete(s.authors, id)

	return nil
}

func (s *fakeStore) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, errors.New("user does not exist")
	}

	return user, nil
}

// fakeIndex is an in-memory stand-in for the search index.
type fakeIndex struct {
	mu    sync.Mutex
	posts map[int64]model.PostDocument
	songs map[uint64]model.SongDocument

	searchErr error
	upsertErr error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{
		posts: map[int64]model.PostDocument{},
		songs: map[uint64]model.SongDocument{},
	}
}

func (i *fakeIndex) UpsertPost(_ context.Context, doc *model.PostDocument) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.upsertErr != nil {
		return i.upsertErr
	}
	i.posts[doc.ID] = *doc

	return nil
}

func (i *fakeIndex) UpsertSongs(_ context.Context, docs []model.SongDocument) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.upsertErr != nil {
		return i.upsertErr
	}
	for _, doc := range docs {
		i.songs[doc.ID] = doc
	}

	return nil
}

func (i *fakeIndex) SearchPosts(_ context.Context, _, _ string, offset, limit int64) ([]model.PostDocument, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.searchErr != nil {
		return nil, i.searchErr
	}

	docs := make([]model.PostDocument, 0, len(i.posts))
	for _, doc := range i.posts {
		docs = append(docs, doc)
	}
	if offset >= int64(len(docs)) {
		return nil, nil
	}
	docs = docs[offset:]
	if limit < int64(len(docs)) {
		docs = docs[:limit]
	}

	return docs, nil
}

func (i *fakeIndex) SongsByPost(_ context.Context, postID int64) ([]model.SongDocument, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	var docs []model.SongDocument
	for _, doc := range i.songs {
		if doc.PostID == postID {
			docs = append(docs, doc)
		}
	}

	return docs, nil
}

func (i *fakeIndex) DeletePost(_ context.Context, postID int64) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	delete(i.posts, postID)

	return nil
}

func (i *fakeIndex) DeleteSongsByPost(_ context.Context, postID int64) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	for id, doc := range i.songs {
		if doc.PostID == postID {
			delete(i.songs, id)
		}
	}

	return nil
}

// fakePublisher records published paths and mints predictable URLs. failAt
// makes the n-th call fail (1-based); zero disables.
type fakePublisher struct {
	mu        sync.Mutex
	published []string
	failAt    int
}

func (p *fakePublisher) Publish(_ context.Context, localPath string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failAt > 0 && len(p.published)+1 == p.failAt {
		return "", errors.New("link tool exploded")
	}
	p.published = append(p.published, localPath)

	return "https://files.example.org/dl/" + filepath.Base(localPath), nil
}

type fakeRemover struct {
	mu      sync.Mutex
	removed []string
	err     error
}

func (r *fakeRemover) Remove(_ context.Context, localKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	r.removed = append(r.removed, localKey)

	return nil
}

type fakeJobs struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (j *fakeJobs) Publish(_ context.Context, message string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.err != nil {
		return j.err
	}
	j.messages = append(j.messages, message)

	return nil
}

// fakeExtractor treats .zip files as supported and "extracts" by copying a
// prepared directory tree per archive path.
type fakeExtractor struct {
	trees map[string]string
	err   error
}

func (e *fakeExtractor) Supported(path string) bool {
	return filepath.Ext(path) == ".zip"
}

func (e *fakeExtractor) Extract(_ context.Context, archivePath, destDir string) error {
	if e.err != nil {
		return e.err
	}

	src, ok := e.trees[archivePath]
	if !ok {
		return fmt.Errorf("no fixture for %s", archivePath)
	}

	return copyTree(src, destDir)
}

// fakeStager resolves staging keys under a fixed root without creating
// anything.
type fakeStager struct {
	root string
}

func (s *fakeStager) Open(int64, string) (stage.File, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeStager) Path(localKey string) string {
	return filepath.Join(s.root, filepath.FromSlash(localKey))
}
