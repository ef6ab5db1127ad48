package minio

type ClientConfig struct {
	AccessKey string
	SecretKey string
	Endpoint  string `yaml:"endpoint"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type PublisherConfig struct {
	Timeout int64  `yaml:"timeout_in_ms"`
	Bucket  string `yaml:"bucket"`

	// PublicURL is the externally reachable base under which published
	// objects resolve, e.g. https://files.example.org.
	PublicURL string `yaml:"public_url"`
}
