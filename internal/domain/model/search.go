package model

// PostDocument is the denormalized search projection of a post. It lives in
// the search index only and is never authoritative: it may lag behind the
// relational row or dangle after the row is gone until a read reconciles it.
type PostDocument struct {
	ID            int64    `json:"_id"`
	Name          string   `json:"name"`
	Text          string   `json:"text"`
	PostType      int32    `json:"post_type"`
	AuthorNames   []string `json:"author_names"`
	DownloadCount int64    `json:"download_count"`
	LikeCount     int64    `json:"like_count"`
	Explicit      bool     `json:"explicit"`
	UploadedAt    int64    `json:"uploaded_at"`
}

// SongDocument is the index projection of a Song, keyed by Song.PackedID.
type SongDocument struct {
	ID             uint64 `json:"_id"`
	PostID         int64  `json:"post_id"`
	SongID         int32  `json:"song_id"`
	Name           string `json:"name"`
	NameEn         string `json:"name_en"`
	LevelEasy      string `json:"level_easy"`
	LevelNormal    string `json:"level_normal"`
	LevelHard      string `json:"level_hard"`
	LevelExtreme   string `json:"level_extreme"`
	LevelExExtreme string `json:"level_ex_extreme"`
}
