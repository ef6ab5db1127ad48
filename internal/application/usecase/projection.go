package usecase

import "modarc/internal/domain/model"

// projectionOf builds the short searchable projection of a post.
func projectionOf(post *model.Post) *model.PostDocument {
	names := make([]string, 0, len(post.Authors))
	for _, a := range post.Authors {
		names = append(names, a.Name)
	}

	return &model.PostDocument{
		ID:            post.ID,
		Name:          post.Name,
		Text:          post.Text,
		PostType:      post.PostType,
		AuthorNames:   names,
		DownloadCount: post.DownloadCount,
		LikeCount:     post.LikeCount,
		Explicit:      post.Explicit,
		UploadedAt:    post.Time.Unix(),
	}
}
