package shell

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// archive MIME types accepted per container extension; a file whose content
// does not match its extension is skipped rather than fed to a tool.
var archiveMIME = map[string]string{
	".zip": "application/zip",
	".rar": "application/x-rar-compressed",
	".7z":  "application/x-7z-compressed",
}

// Extractor shells out to one external tool per recognized container format.
type Extractor struct {
	cfg ExtractorConfig
}

func NewExtractor(cfg ExtractorConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

func (e *Extractor) Supported(path string) bool {
	_, ok := archiveMIME[strings.ToLower(filepath.Ext(path))]

	return ok
}

func (e *Extractor) Extract(ctx context.Context, archivePath, destDir string) error {
	ext := strings.ToLower(filepath.Ext(archivePath))
	want, ok := archiveMIME[ext]
	if !ok {
		return fmt.Errorf("unsupported container %q", ext)
	}

	detected, err := mimetype.DetectFile(archivePath)
	if err != nil {
		return fmt.Errorf("sniff %s: %w", archivePath, err)
	}
	if !detected.Is(want) {
		return fmt.Errorf("content of %s is %s, not %s", archivePath, detected.String(), want)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(e.cfg.Timeout)*time.Millisecond)
	defer cancel()

	var cmd *exec.Cmd
	switch ext {
	case ".zip":
		cmd = exec.CommandContext(ctx, "unzip", "-o", archivePath, "-d", destDir)
	case ".rar":
		cmd = exec.CommandContext(ctx, "unrar", "x", "-o+", archivePath, destDir)
	case ".7z":
		cmd = exec.CommandContext(ctx, "7z", "x", "-y", "-o"+destDir, archivePath)
	}

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("extract %s: %w (%s)", archivePath, err, strings.TrimSpace(string(out)))
	}

	return nil
}
