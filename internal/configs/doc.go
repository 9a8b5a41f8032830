// Package configs manages cpz user configuration and well-known paths.
//
// Configuration is stored in TOML at <user config dir>/cpz/config.toml:
//
//	[wallet]
//	default_account = "alice"
//
//	[compression]
//	codec = "zstd"
//
//	[output]
//	directory = ""
//
// A missing file is not an error; LoadUserConfig returns the defaults.
//
// # Settings
//
// UserCPZSettings is initialized at startup and holds:
//   - ConfigsPath: where config.toml lives
//   - KeysPath: the wallet keystore directory ($XDG_DATA_HOME/cpz/keys)
//   - DataPath: where the history log lives ($XDG_DATA_HOME/cpz)
//   - Username: the OS user, used for the default wallet account
//
// SaveTOML and LoadTOML are shared by every TOML file cpz writes,
// including the keystore's account index.
package configs
