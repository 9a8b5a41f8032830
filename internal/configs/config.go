package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/cpz/internal/compress"
	"github.com/PolarWolf314/cpz/internal/utils"
)

const configFileName = "config.toml"

type UserConfig struct {
	Wallet      WalletConfig      `toml:"wallet"`
	Compression CompressionConfig `toml:"compression"`
	Output      OutputConfig      `toml:"output"`
}

type WalletConfig struct {
	DefaultAccount string `toml:"default_account"`
}

type CompressionConfig struct {
	Codec string `toml:"codec"`
}

type OutputConfig struct {
	// Directory receives encrypted and decrypted files. Empty means next
	// to the source file.
	Directory string `toml:"directory"`
}

// DefaultUserConfig returns the configuration used when no file exists.
func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Wallet:      WalletConfig{DefaultAccount: utils.SanitizeAccountName(UserCPZSettings.Username)},
		Compression: CompressionConfig{Codec: string(compress.Default)},
	}
}

// UserConfigPath returns the path of the user config file.
func UserConfigPath() string {
	return filepath.Join(UserCPZSettings.ConfigsPath, configFileName)
}

// LoadUserConfig loads the user configuration, falling back to defaults
// for a missing file and for empty fields.
func LoadUserConfig() (*UserConfig, error) {
	config := DefaultUserConfig()

	configPath := UserConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	loaded := &UserConfig{}
	if err := LoadTOML(configPath, loaded); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if loaded.Wallet.DefaultAccount != "" {
		config.Wallet.DefaultAccount = loaded.Wallet.DefaultAccount
	}
	if loaded.Compression.Codec != "" {
		config.Compression.Codec = loaded.Compression.Codec
	}
	config.Output.Directory = loaded.Output.Directory

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if err := SaveTOML(UserConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}
	return nil
}

// EnsureUserConfig writes the defaults if no config file exists yet.
// The returned bool reports whether a file was created.
func EnsureUserConfig() (*UserConfig, bool, error) {
	if _, err := os.Stat(UserConfigPath()); err == nil {
		config, err := LoadUserConfig()
		return config, false, err
	}

	config := DefaultUserConfig()
	if err := SaveUserConfig(config); err != nil {
		return nil, false, err
	}
	return config, true, nil
}

// Validate checks values that cannot be checked by the TOML decoder.
func (c *UserConfig) Validate() error {
	if _, err := compress.ParseCodec(c.Compression.Codec); err != nil {
		return fmt.Errorf("invalid compression.codec: %w", err)
	}
	return nil
}

// Codec returns the configured compression codec.
func (c *UserConfig) Codec() compress.Codec {
	codec, err := compress.ParseCodec(c.Compression.Codec)
	if err != nil {
		return compress.Default
	}
	return codec
}
