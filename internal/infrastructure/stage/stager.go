package stage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zeebo/errs"

	"modarc/internal/domain/entity"
	"modarc/internal/domain/repository/stage"
)

// ErrUnsafePath marks client filenames that would escape the staging
// directory.
var ErrUnsafePath = errs.Class("unsafe stage path")

// Stager owns the local staging area: one directory per user id, one file
// per declared upload slot. Files survive publish, their staging keys become
// the post's local_files entries.
type Stager struct {
	root string
}

func New(cfg Config) (*Stager, error) {
	if err := os.MkdirAll(cfg.Root, 0o755); err != nil {
		return nil, err
	}

	return &Stager{root: cfg.Root}, nil
}

func (s *Stager) Open(userID int64, filename string) (stage.File, error) {
	rel, err := safeRelPath(filename)
	if err != nil {
		return nil, err
	}

	userDir := filepath.Join(s.root, strconv.FormatInt(userID, 10))
	if err := os.MkdirAll(filepath.Dir(filepath.Join(userDir, rel)), 0o755); err != nil {
		return nil, err
	}

	path := filepath.Join(userDir, rel)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}

	return &File{
		f:    f,
		key:  strconv.FormatInt(userID, 10) + "/" + filepath.ToSlash(rel),
		path: path,
	}, nil
}

func (s *Stager) Path(localKey string) string {
	return filepath.Join(s.root, filepath.FromSlash(localKey))
}

// safeRelPath validates a client-declared filename as a relative path that
// cannot leave the user's staging directory.
func safeRelPath(filename string) (string, error) {
	if filename == "" {
		return "", ErrUnsafePath.New("empty filename")
	}

	cleaned := filepath.Clean(filepath.FromSlash(filename))
	if filepath.IsAbs(cleaned) || !filepath.IsLocal(cleaned) {
		return "", ErrUnsafePath.New("filename %q escapes staging directory", filename)
	}
	if strings.HasPrefix(cleaned, "..") {
		return "", ErrUnsafePath.New("filename %q contains parent segment", filename)
	}

	return cleaned, nil
}

type File struct {
	f    *os.File
	key  string
	path string
	size int64
}

func (f *File) Write(p []byte) (int, error) {
	n, err := f.f.Write(p)
	f.size += int64(n)

	return n, err
}

func (f *File) Finalize() (entity.StagedFile, error) {
	if err := f.f.Sync(); err != nil {
		f.f.Close()

		return entity.StagedFile{}, fmt.Errorf("sync stage file: %w", err)
	}
	if err := f.f.Close(); err != nil {
		return entity.StagedFile{}, err
	}

	return entity.StagedFile{Key: f.key, Path: f.path, Size: f.size}, nil
}

func (f *File) Discard() error {
	return f.f.Close()
}
