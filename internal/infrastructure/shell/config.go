package shell

type PublisherConfig struct {
	// PublishCommand is the link-generation tool argv; the staged file path
	// is appended as the final argument. The tool must print the public URL
	// on stdout and exit zero.
	PublishCommand []string `yaml:"publish_command"`

	// DeleteCommand is the deletion tool argv; the staging key is appended.
	DeleteCommand []string `yaml:"delete_command"`

	// URLPrefix is the only accepted prefix of the tool's output.
	URLPrefix string `yaml:"url_prefix"`

	// RewriteFrom/RewriteTo turn the shared link into its stable
	// direct-download form by plain substitution.
	RewriteFrom string `yaml:"rewrite_from"`
	RewriteTo   string `yaml:"rewrite_to"`

	Timeout int64 `yaml:"timeout_in_ms"`
}

type ExtractorConfig struct {
	Timeout int64 `yaml:"timeout_in_ms"`
}
