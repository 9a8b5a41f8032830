package utils

import (
	"fmt"
	"os"
	"runtime"

	cerrors "github.com/PolarWolf314/cpz/internal/errors"
	"golang.org/x/term"
)

// PasswordEnvVar supplies the password when no flag is given.
const PasswordEnvVar = "CPZ_PASSWORD"

// ResolvePassword returns the password from the flag value, the
// CPZ_PASSWORD environment variable, or a hidden prompt, in that order.
// With confirm set the prompt asks twice.
func ResolvePassword(flagValue string, confirm bool) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env, ok := os.LookupEnv(PasswordEnvVar); ok && env != "" {
		return env, nil
	}

	if !IsTerminal() && !IsTTYAvailable() {
		return "", fmt.Errorf("%w: pass --password or set %s", cerrors.ErrPasswordRequired, PasswordEnvVar)
	}

	first, err := ReadPassphraseFromTTY("Password: ")
	if err != nil {
		return "", err
	}
	if len(first) == 0 {
		return "", cerrors.ErrPasswordRequired
	}

	if confirm {
		second, err := ReadPassphraseFromTTY("Confirm password: ")
		if err != nil {
			return "", err
		}
		if string(first) != string(second) {
			return "", fmt.Errorf("passwords do not match")
		}
	}

	return string(first), nil
}

// ReadPassphraseFromTTY reads from /dev/tty (CON on Windows) so stdin stays
// free for piped data such as a sealed secret.
func ReadPassphraseFromTTY(prompt string) ([]byte, error) {
	tty, err := os.Open(ttyPath())
	if err != nil {
		return nil, fmt.Errorf("cannot open %s for passphrase input: %w", ttyPath(), err)
	}
	defer tty.Close()

	fd := int(tty.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s is not a terminal", ttyPath())
	}

	return readHidden(fd, prompt)
}

func readHidden(fd int, prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	return passphrase, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsTTYAvailable returns true if the controlling terminal can be opened.
func IsTTYAvailable() bool {
	tty, err := os.Open(ttyPath())
	if err != nil {
		return false
	}
	defer tty.Close()

	return term.IsTerminal(int(tty.Fd()))
}

func ttyPath() string {
	if runtime.GOOS == "windows" {
		return "CON"
	}
	return "/dev/tty"
}
