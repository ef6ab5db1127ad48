package usecase

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"modarc/internal/domain/model"
	"modarc/internal/domain/repository/archive"
	"modarc/internal/domain/repository/database"
	"modarc/internal/domain/repository/index"
	"modarc/internal/domain/repository/stage"
	"modarc/pkg/logger"
	"modarc/pkg/pvdb"
)

// Game-data layout conventions: a mod's config.toml declares include paths,
// each of which may hold one of these rom roots, which in turn may hold a
// <prefix>pv_db.txt song database.
var (
	romRoots   = []string{"rom", "rom_ps4", "rom_ps4_dlc", "rom_steam", "rom_switch"}
	dbPrefixes = []string{"", "mdata_"}
)

const markerFile = "config.toml"

// Scanner runs after the upload response is already sent: it extracts the
// post's container files into scratch directories, walks them for song
// databases and upserts the resulting metadata entries. Every failure here
// is invisible to the uploader.
type Scanner struct {
	retriever   database.Retriever
	idx         index.Index
	extractor   archive.Extractor
	stager      stage.Stager
	scratchRoot string
}

func NewScanner(retriever database.Retriever, idx index.Index,
	extractor archive.Extractor, stager stage.Stager, scratchRoot string,
) *Scanner {
	return &Scanner{
		retriever:   retriever,
		idx:         idx,
		extractor:   extractor,
		stager:      stager,
		scratchRoot: scratchRoot,
	}
}

func (s *Scanner) ScanPost(ctx context.Context, postID int64) error {
	post, err := s.retriever.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	existing, err := s.idx.SongsByPost(ctx, postID)
	if err != nil {
		logger.Error("failed to load existing song documents, dedup disabled",
			"post", postID, "err", err)
	}

	seen := make(map[dedupKey]struct{}, len(existing))
	for _, doc := range existing {
		seen[dedupKey{doc.SongID, doc.Name, doc.NameEn}] = struct{}{}
	}

	var docs []model.SongDocument
	for _, key := range post.LocalFiles {
		path := s.stager.Path(key)
		if !s.extractor.Supported(path) {
			continue
		}

		for _, entry := range s.scanArchive(ctx, path) {
			k := dedupKey{entry.SongID, entry.Name, entry.NameEn}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			docs = append(docs, songDocument(postID, entry))
		}
	}

	if len(docs) == 0 {
		return nil
	}

	return s.idx.UpsertSongs(ctx, docs)
}

type dedupKey struct {
	songID int32
	name   string
	nameEn string
}

// scanArchive extracts one container into a scratch directory and scans it.
// Failures are logged and yield no entries; other files keep scanning.
func (s *Scanner) scanArchive(ctx context.Context, path string) []pvdb.Entry {
	scratch := filepath.Join(s.scratchRoot, uuid.NewString())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		logger.Error("failed to create scratch directory", "err", err)

		return nil
	}
	defer os.RemoveAll(scratch)

	if err := s.extractor.Extract(ctx, path, scratch); err != nil {
		logger.Warn("archive extraction failed, skipping", "archive", path, "err", err)

		return nil
	}

	return scanTree(scratch)
}

// scanTree locates marker config files anywhere under root and parses every
// song database their include paths lead to.
func scanTree(root string) []pvdb.Entry {
	var entries []pvdb.Entry

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || d.Name() != markerFile {
			return nil //nolint
		}

		for _, include := range readIncludes(path) {
			entries = append(entries, scanInclude(filepath.Dir(path), include)...)
		}

		return nil
	})

	return entries
}

func readIncludes(configPath string) []string {
	var cfg struct {
		Include []string `toml:"include"`
	}
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		logger.Warn("unparseable mod config, skipping", "path", configPath, "err", err)

		return nil
	}

	return cfg.Include
}

func scanInclude(base, include string) []pvdb.Entry {
	var entries []pvdb.Entry

	for _, root := range romRoots {
		dir := filepath.Join(base, filepath.FromSlash(include), root)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}

		for _, prefix := range dbPrefixes {
			content, err := os.ReadFile(filepath.Join(dir, prefix+"pv_db.txt"))
			if err != nil {
				continue
			}
			entries = append(entries, pvdb.Parse(string(content))...)
		}
	}

	return entries
}

func songDocument(postID int64, entry pvdb.Entry) model.SongDocument {
	song := model.Song{PostID: postID, SongID: entry.SongID}

	return model.SongDocument{
		ID:             song.PackedID(),
		PostID:         postID,
		SongID:         entry.SongID,
		Name:           entry.Name,
		NameEn:         entry.NameEn,
		LevelEasy:      entry.LevelEasy,
		LevelNormal:    entry.LevelNormal,
		LevelHard:      entry.LevelHard,
		LevelExtreme:   entry.LevelExtreme,
		LevelExExtreme: entry.LevelExExtreme,
	}
}
