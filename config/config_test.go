package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadfromFile(t *testing.T) {
	cfg, err := Load("./config.yml")
	require.NoError(t, err, "error must be nil.")
	require.Equal(t, BackendShell, cfg.Storage.Backend)
	require.NotEmpty(t, cfg.ShellPublisher.URLPrefix)
}

func TestBasicCheck(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Storage.Backend = "ftp" },
			wantErr: "unknown storage backend",
		},
		{
			name:    "missing stage root",
			mutate:  func(c *Config) { c.Stage.Root = "" },
			wantErr: "stage root",
		},
		{
			name:    "shell backend without command",
			mutate:  func(c *Config) { c.ShellPublisher.PublishCommand = nil },
			wantErr: "publisher command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("./config.yml")
			require.NoError(t, err)

			tt.mutate(cfg)
			err = cfg.basicCheck()
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
