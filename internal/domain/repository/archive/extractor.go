package archive

import "context"

// Extractor unpacks recognized container files into a scratch directory.
type Extractor interface {
	// Supported reports whether the file's extension names one of the
	// known container formats.
	Supported(path string) bool

	Extract(ctx context.Context, archivePath, destDir string) error
}
