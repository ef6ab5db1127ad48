package entity

// StagedFile is a finalized stage file handed from the receiver to the
// publish/commit pipeline. Key is the stable staging key recorded in
// local_files; Path is the absolute on-disk location.
type StagedFile struct {
	Key  string
	Path string
	Size int64
}
