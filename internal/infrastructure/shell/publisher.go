package shell

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Publisher obtains durable public URLs by running an external
// link-generation tool per staged file. The tool blocks the calling session;
// the configured timeout bounds a hung tool.
type Publisher struct {
	cfg PublisherConfig
}

func NewPublisher(cfg PublisherConfig) (*Publisher, error) {
	if len(cfg.PublishCommand) == 0 {
		return nil, errors.New("publish command is not configured")
	}

	return &Publisher{cfg: cfg}, nil
}

func (p *Publisher) Publish(ctx context.Context, localPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.Timeout)*time.Millisecond)
	defer cancel()

	argv := append(append([]string{}, p.cfg.PublishCommand...), localPath)
	out, err := exec.CommandContext(ctx, argv[0], argv[1:]...).Output()
	if err != nil {
		return "", fmt.Errorf("link tool failed for %s: %w", localPath, err)
	}

	url := strings.TrimSpace(string(out))
	if !strings.HasPrefix(url, p.cfg.URLPrefix) {
		return "", fmt.Errorf("link tool printed unexpected output %q", url)
	}

	if p.cfg.RewriteFrom != "" {
		url = strings.Replace(url, p.cfg.RewriteFrom, p.cfg.RewriteTo, 1)
	}

	return url, nil
}

// Remover runs the external deletion tool. Callers treat failures as best
// effort.
type Remover struct {
	cfg PublisherConfig
}

func NewRemover(cfg PublisherConfig) (*Remover, error) {
	if len(cfg.DeleteCommand) == 0 {
		return nil, errors.New("delete command is not configured")
	}

	return &Remover{cfg: cfg}, nil
}

func (r *Remover) Remove(ctx context.Context, localKey string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Timeout)*time.Millisecond)
	defer cancel()

	argv := append(append([]string{}, r.cfg.DeleteCommand...), localKey)
	if out, err := exec.CommandContext(ctx, argv[0], argv[1:]...).CombinedOutput(); err != nil {
		return fmt.Errorf("delete tool failed for %s: %w (%s)", localKey, err, strings.TrimSpace(string(out)))
	}

	return nil
}
