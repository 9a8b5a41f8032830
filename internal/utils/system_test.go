package utils

import (
	"regexp"
	"testing"
)

func TestSanitizeAccountName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"LowercaseSimple", "Alice", "alice"},
		{"SpacesToHyphens", "Alice Smith", "alice-smith"},
		{"RemoveSpecialChars", "al@ice#1!", "alice1"},
		{"RemoveConsecutiveHyphens", "alice--smith", "alice-smith"},
		{"TrimHyphens", "-alice-", "alice"},
		{"TrimLeadingDot", ".alice", "alice"},
		{"EmptyToDefault", "", "default"},
		{"OnlySpecialChars", "@#$%", "default"},
		{"PreserveUnderscoresAndDots", "alice_s.smith", "alice_s.smith"},
		{"DomainPrefix", `CORP\Alice`, "alice"},
		{"TrimWhitespace", "  alice  ", "alice"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := SanitizeAccountName(tc.input)
			if result != tc.expected {
				t.Errorf("SanitizeAccountName(%q) = %q, expected %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestDefaultAccountName(t *testing.T) {
	name := DefaultAccountName()
	if name == "" {
		t.Fatal("Expected non-empty account name")
	}

	valid := regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)
	if !valid.MatchString(name) {
		t.Errorf("DefaultAccountName() = %q is not a valid account name", name)
	}
}

func TestGetUsername(t *testing.T) {
	username, err := GetUsername()
	if err != nil {
		t.Fatalf("GetUsername failed: %v", err)
	}
	if username == "" {
		t.Error("Expected non-empty username")
	}
}
