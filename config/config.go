package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"modarc/internal/infrastructure/broker"
	"modarc/internal/infrastructure/cdn"
	"modarc/internal/infrastructure/minio"
	"modarc/internal/infrastructure/mongoindex"
	"modarc/internal/infrastructure/postgres"
	"modarc/internal/infrastructure/shell"
	"modarc/internal/infrastructure/stage"
	"modarc/pkg/logger"
)

// Storage backends selectable under storage.backend.
const (
	BackendShell = "shell"
	BackendMinIO = "minio"
)

// Config represents the configs used by services on system.
type Config struct {
	Environment    string                 `yaml:"environment"`
	Server         ServerConfig           `yaml:"server"`
	Logger         logger.Config          `yaml:"logger"`
	DBConfig       postgres.Config        `yaml:"db_config"`
	IndexConfig    mongoindex.Config      `yaml:"index_config"`
	BrokerConfig   broker.Config          `yaml:"redis_broker_config"`
	JobPublisher   broker.PublisherConfig `yaml:"job_publisher"`
	Stage          stage.Config           `yaml:"stage"`
	CDN            cdn.Config             `yaml:"cdn"`
	Storage        StorageConfig          `yaml:"storage"`
	ShellPublisher shell.PublisherConfig  `yaml:"shell_publisher"`
	Extractor      shell.ExtractorConfig  `yaml:"extractor"`
	MinIOClient    minio.ClientConfig     `yaml:"minio_client"`
	MinIOPublisher minio.PublisherConfig  `yaml:"minio_publisher"`
	Scanner        ScannerConfig          `yaml:"scanner"`
	Auth           AuthConfig             `yaml:"auth"`
}

type ServerConfig struct {
	Bind string `yaml:"bind"`
}

// StorageConfig selects the durable-storage backend the upload pipeline
// publishes through.
type StorageConfig struct {
	Backend string `yaml:"backend"`
}

type ScannerConfig struct {
	ScratchRoot string `yaml:"scratch_root"`
	Workers     int    `yaml:"workers"`
}

type AuthConfig struct {
	Secret string
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}
	defer file.Close()

	config := &Config{}

	decoder := yaml.NewDecoder(file)

	if err := decoder.Decode(config); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	if config.Environment != "prod" {
		if err := godotenv.Load(); err != nil {
			return nil, Error{
				reason: err.Error(),
			}
		}
	}

	config.MinIOClient.AccessKey = os.Getenv("MINIO_ROOT_USER")
	config.MinIOClient.SecretKey = os.Getenv("MINIO_ROOT_PASSWORD")
	config.DBConfig.URI = os.Getenv("DATABASE_URI")
	config.IndexConfig.URI = os.Getenv("INDEX_URI")
	config.BrokerConfig.URI = os.Getenv("BROKER_URI")
	config.Auth.Secret = os.Getenv("TOKEN_SECRET")

	if err = config.basicCheck(); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	return config, nil
}

// basicCheck validates the basic stuff in config.
func (c *Config) basicCheck() error {
	switch c.Storage.Backend {
	case BackendShell, BackendMinIO:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Stage.Root == "" {
		return fmt.Errorf("stage root is not set")
	}

	if c.Scanner.ScratchRoot == "" {
		return fmt.Errorf("scanner scratch root is not set")
	}

	if c.Storage.Backend == BackendShell {
		if len(c.ShellPublisher.PublishCommand) == 0 {
			return fmt.Errorf("shell publisher command is not set")
		}
		if c.ShellPublisher.URLPrefix == "" {
			return fmt.Errorf("shell publisher url prefix is not set")
		}
	}

	return nil
}
