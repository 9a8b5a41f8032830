package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/cpz/internal/utils"
)

type UserSettings struct {
	ConfigsPath string
	KeysPath    string
	DataPath    string
	Username    string
}

var UserCPZSettings *UserSettings

func init() {
	settings, err := NewUserSettings()
	if err != nil {
		log.Fatalf("error initialising settings: %s", err)
	}
	UserCPZSettings = settings
}

// NewUserSettings resolves the per-user paths from the environment.
func NewUserSettings() (*UserSettings, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	username, err := utils.GetUsername()
	if err != nil {
		username = ""
	}

	return &UserSettings{
		ConfigsPath: filepath.Join(configDir, "cpz"),
		KeysPath:    filepath.Join(dataDir, "cpz", "keys"),
		DataPath:    filepath.Join(dataDir, "cpz"),
		Username:    username,
	}, nil
}

// UseDirectory points every setting below root, isolating cpz from the
// real user directories.
func (s *UserSettings) UseDirectory(root string) {
	s.ConfigsPath = filepath.Join(root, "config")
	s.KeysPath = filepath.Join(root, "data", "keys")
	s.DataPath = filepath.Join(root, "data")
}
