package abstraction

import (
	"context"

	"modarc/internal/domain/model"
)

// Authorizer resolves an identity token into a known identity.
type Authorizer interface {
	Resolve(ctx context.Context, token string) (*model.User, error)
}

// ImageVerifier checks that an image reference is CDN-hosted and reachable.
type ImageVerifier interface {
	Verify(ctx context.Context, url string) error
}
