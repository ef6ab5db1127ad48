package model

import "time"

// Post is the durable content record. Files and LocalFiles are parallel
// lists: LocalFiles[i] is the staging key that produced the published URL
// Files[i], and is the handle used to delete it remotely later.
type Post struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Text          string    `json:"text"`
	PostType      int32     `json:"post_type"`
	Time          time.Time `json:"time"`
	Files         []string  `json:"files"`
	LocalFiles    []string  `json:"local_files"`
	Images        []string  `json:"images"`
	DownloadCount int64     `json:"download_count"`
	LikeCount     int64     `json:"like_count"`
	Explicit      bool      `json:"explicit"`
	Authors       []User    `json:"authors"`
	Dependencies  []int64   `json:"dependencies"`
	Comments      []Comment `json:"comments"`
}

type Comment struct {
	ID     int64     `json:"id"`
	PostID int64     `json:"post_id"`
	UserID int64     `json:"user_id"`
	Text   string    `json:"text"`
	Time   time.Time `json:"time"`
}
