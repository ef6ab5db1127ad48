package abstraction

import (
	"context"

	"modarc/internal/domain/dto"
	"modarc/internal/domain/entity"
	"modarc/internal/domain/model"
)

type Uploader interface {
	// Upload publishes the staged files and commits the post (insert or
	// wholesale edit), returning the post id.
	Upload(ctx context.Context, author *model.User, manifest *dto.UploadManifest,
		files []entity.StagedFile) (int64, error)
}
