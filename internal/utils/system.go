package utils

import (
	"os"
	"os/user"
	"regexp"
	"strings"
)

var (
	invalidAccountChars = regexp.MustCompile(`[^a-z0-9._-]`)
	repeatedHyphens     = regexp.MustCompile(`-+`)
)

// GetUsername returns the current username.
func GetUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// GetHostname returns the system hostname.
func GetHostname() (string, error) {
	return os.Hostname()
}

// SanitizeAccountName turns an arbitrary name into a valid wallet account
// name: lowercase, spaces to hyphens, anything else outside [a-z0-9._-]
// removed. Returns "default" when nothing usable is left.
func SanitizeAccountName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "-")

	// Windows usernames carry a DOMAIN\ prefix.
	if i := strings.LastIndex(name, `\`); i >= 0 {
		name = name[i+1:]
	}

	name = invalidAccountChars.ReplaceAllString(name, "")
	name = repeatedHyphens.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-._")

	if name == "" {
		return "default"
	}
	return name
}

// DefaultAccountName derives the account created on first use from the
// OS user, falling back to the hostname.
func DefaultAccountName() string {
	if username, err := GetUsername(); err == nil && username != "" {
		return SanitizeAccountName(username)
	}
	if hostname, err := GetHostname(); err == nil {
		return SanitizeAccountName(hostname)
	}
	return "default"
}
