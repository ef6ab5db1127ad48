package dto

// UploadManifest is the JSON payload sent as the second frame of an upload
// session. ID is present only for edits.
type UploadManifest struct {
	ID          *int64   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Text        string   `json:"text"`
	PostType    int32    `json:"post_type"`
	Filenames   []string `json:"filenames"`
	Image       string   `json:"image"`
	ImagesExtra []string `json:"images_extra,omitempty"`
}

// Images returns the primary image followed by the extra ones.
func (m *UploadManifest) Images() []string {
	return append([]string{m.Image}, m.ImagesExtra...)
}
