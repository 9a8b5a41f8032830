// Package utils provides shared helpers used by the cpz commands.
//
// # Filesystem Utilities
//
//   - ResolveFiles: expands paths, directories and ** globs into files
//   - FormatPaths: formats file paths for human-readable output
//
// # System Utilities
//
//   - GetUsername, GetHostname: identity of the local machine
//   - SanitizeAccountName, DefaultAccountName: wallet account naming
//
// # Terminal Utilities
//
//   - ResolvePassword: flag, CPZ_PASSWORD, then a hidden prompt
//   - ReadPassphraseFromTTY: hidden input from the controlling terminal
//   - ReadStdin: reads piped input such as a sealed secret
package utils
