package configs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/cpz/internal/compress"
)

func withTempSettings(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	original := *UserCPZSettings
	UserCPZSettings.UseDirectory(root)
	t.Cleanup(func() { *UserCPZSettings = original })
	return root
}

func TestUseDirectory(t *testing.T) {
	root := withTempSettings(t)

	if UserCPZSettings.ConfigsPath != filepath.Join(root, "config") {
		t.Errorf("ConfigsPath = %q", UserCPZSettings.ConfigsPath)
	}
	if !strings.HasPrefix(UserCPZSettings.KeysPath, UserCPZSettings.DataPath) {
		t.Errorf("KeysPath %q should live under DataPath %q", UserCPZSettings.KeysPath, UserCPZSettings.DataPath)
	}
}

func TestSaveAndLoadUserConfig(t *testing.T) {
	withTempSettings(t)

	config := &UserConfig{
		Wallet:      WalletConfig{DefaultAccount: "alice"},
		Compression: CompressionConfig{Codec: "lz4"},
		Output:      OutputConfig{Directory: "/tmp/out"},
	}

	if err := SaveUserConfig(config); err != nil {
		t.Fatalf("SaveUserConfig failed: %v", err)
	}

	loaded, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}

	if loaded.Wallet.DefaultAccount != "alice" {
		t.Errorf("Expected default account %q, got %q", "alice", loaded.Wallet.DefaultAccount)
	}
	if loaded.Codec() != compress.LZ4 {
		t.Errorf("Expected codec lz4, got %q", loaded.Codec())
	}
	if loaded.Output.Directory != "/tmp/out" {
		t.Errorf("Expected output directory %q, got %q", "/tmp/out", loaded.Output.Directory)
	}
}

func TestLoadUserConfigNonExistent(t *testing.T) {
	withTempSettings(t)

	config, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if config.Codec() != compress.Default {
		t.Errorf("Expected default codec, got %q", config.Codec())
	}
	if config.Output.Directory != "" {
		t.Errorf("Expected empty output directory, got %q", config.Output.Directory)
	}
}

func TestLoadUserConfigFillsDefaults(t *testing.T) {
	withTempSettings(t)

	path := UserConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[output]\ndirectory = \"out\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	config, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if config.Compression.Codec != string(compress.Default) {
		t.Errorf("Expected codec to default, got %q", config.Compression.Codec)
	}
	if config.Output.Directory != "out" {
		t.Errorf("Expected output directory out, got %q", config.Output.Directory)
	}
}

func TestLoadUserConfigRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown codec", "[compression]\ncodec = \"brotli\"\n"},
		{"malformed toml", "[wallet\ndefault_account = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withTempSettings(t)

			path := UserConfigPath()
			if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			if _, err := LoadUserConfig(); err == nil {
				t.Error("LoadUserConfig should fail")
			}
		})
	}
}

func TestSaveUserConfigRejectsUnknownCodec(t *testing.T) {
	withTempSettings(t)

	config := DefaultUserConfig()
	config.Compression.Codec = "gzip"
	if err := SaveUserConfig(config); err == nil {
		t.Fatal("SaveUserConfig should reject an unknown codec")
	}
	if _, err := os.Stat(UserConfigPath()); !os.IsNotExist(err) {
		t.Error("no config file should be written")
	}
}

func TestEnsureUserConfig(t *testing.T) {
	withTempSettings(t)

	config, created, err := EnsureUserConfig()
	if err != nil {
		t.Fatalf("EnsureUserConfig failed: %v", err)
	}
	if !created {
		t.Error("EnsureUserConfig should report creation on first call")
	}
	if config.Codec() != compress.Default {
		t.Errorf("Expected default codec, got %q", config.Codec())
	}

	config.Wallet.DefaultAccount = "bob"
	if err := SaveUserConfig(config); err != nil {
		t.Fatal(err)
	}

	again, created, err := EnsureUserConfig()
	if err != nil {
		t.Fatalf("EnsureUserConfig failed: %v", err)
	}
	if created {
		t.Error("EnsureUserConfig should not recreate an existing config")
	}
	if again.Wallet.DefaultAccount != "bob" {
		t.Errorf("Expected existing config to be kept, got %q", again.Wallet.DefaultAccount)
	}
}
