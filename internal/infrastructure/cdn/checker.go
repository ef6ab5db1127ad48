package cdn

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/zeebo/errs"
)

// ErrImage marks image references that are off-CDN or unreachable.
var ErrImage = errs.Class("image validation")

type Config struct {
	// BaseURL is the only accepted prefix for image references.
	BaseURL string `yaml:"base_url"`
	Timeout int64  `yaml:"timeout_in_ms"`
}

// Checker validates that image references are hosted on the expected CDN
// and actually resolve, before any upload byte is accepted.
type Checker struct {
	cfg    Config
	client *http.Client
}

func NewChecker(cfg Config) *Checker {
	return &Checker{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Millisecond,
		},
	}
}

func (c *Checker) Verify(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, c.cfg.BaseURL) {
		return ErrImage.New("image %q is not hosted on the expected CDN", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return ErrImage.Wrap(err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return ErrImage.New("image %q is not reachable: %v", url, err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrImage.New("image %q answered %s", url, resp.Status)
	}

	return nil
}
