package workflows

import (
	"context"

	"github.com/PolarWolf314/cpz/internal/audit"
	"github.com/PolarWolf314/cpz/internal/configs"
)

// ConfigResult describes the user configuration on disk.
type ConfigResult struct {
	Path   string
	Config *configs.UserConfig

	// Created reports that InitConfig wrote a new file.
	Created bool

	KeysPath    string
	HistoryPath string
}

// InitConfig writes the default configuration unless one already exists.
func InitConfig(ctx context.Context) (*ConfigResult, error) {
	config, created, err := configs.EnsureUserConfig()
	if err != nil {
		return nil, err
	}
	return configResult(config, created), nil
}

// ShowConfig returns the effective configuration.
func ShowConfig(ctx context.Context) (*ConfigResult, error) {
	config, err := configs.LoadUserConfig()
	if err != nil {
		return nil, err
	}
	return configResult(config, false), nil
}

func configResult(config *configs.UserConfig, created bool) *ConfigResult {
	return &ConfigResult{
		Path:        configs.UserConfigPath(),
		Config:      config,
		Created:     created,
		KeysPath:    configs.UserCPZSettings.KeysPath,
		HistoryPath: audit.LogPath(),
	}
}
