package stage

import "modarc/internal/domain/entity"

// File is an open stage file being filled by the chunk receiver.
type File interface {
	Write(p []byte) (int, error)

	// Finalize flushes, fsyncs and closes the file, returning its durable
	// description. The file must not be written afterwards.
	Finalize() (entity.StagedFile, error)

	// Discard closes the file without finalizing (session abort).
	Discard() error
}

type Stager interface {
	// Open creates the per-user staging directory if needed and opens a
	// stage file for the given client-declared filename. Filenames that
	// escape the user directory are rejected.
	Open(userID int64, filename string) (File, error)

	// Path resolves a staging key from local_files back to its absolute
	// on-disk location.
	Path(localKey string) string
}
