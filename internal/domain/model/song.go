package model

// Song is one metadata entry extracted from inside a post's archive
// content: a pv_db song with two localized names and up to five difficulty
// levels. Empty level strings mean the chart edition was absent.
type Song struct {
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

const songIDBits = 20

// PackedID builds the index document key: post id in the high bits, song id
// in the low bits, so the key is unique per (post, song) and decomposable.
func (s Song) PackedID() uint64 {
	return uint64(s.PostID)<<songIDBits | uint64(s.SongID)&(1<<songIDBits-1)
}

// UnpackSongKey splits a packed song document key back into its parts.
func UnpackSongKey(key uint64) (postID int64, songID int32) {
	return int64(key >> songIDBits), int32(key & (1<<songIDBits - 1))
}
