package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatterWithColor(t *testing.T) {
	unsetNoColor(t)
	forceColor(t, false)

	result := Code.Sprint("cpz file encrypt notes.txt")
	if strings.Contains(result, "`") {
		t.Errorf("Code.Sprint should not contain backticks when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Code.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
	}
}

func TestFormatterWithNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "cpz password generate", "`cpz password generate`"},
		{"Path has no decoration", Path, "notes.txt.cpz", "notes.txt.cpz"},
		{"Flag has no decoration", Flag, "--output-dir", "--output-dir"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Warning has no decoration", Warning, "⚠", "⚠"},
		{"Info has no decoration", Info, "→", "→"},
		{"Highlight adds quotes", Highlight, "alice", "'alice'"},
		{"Secret adds angle brackets", Secret, "hunter2", "<hunter2>"},
		{"Label has no decoration", Label, "salt", "salt"},
		{"Muted adds parentheses", Muted, "lz4", "(lz4)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.formatter.Sprint(tt.input)
			if got != tt.want {
				t.Errorf("Sprint(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatterSprintf(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	result := Code.Sprintf("cpz file %s", "decrypt")
	want := "`cpz file decrypt`"
	if result != want {
		t.Errorf("Code.Sprintf() = %q, want %q", result, want)
	}
}

func TestNoColorFunction(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if !noColor() {
		t.Error("noColor() should return true when NO_COLOR is set")
	}

	unsetNoColor(t)
	forceColor(t, true)
	if !noColor() {
		t.Error("noColor() should return true when color.NoColor is true")
	}
}

func TestEnsureNewline(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "\n"},
		{"done", "done\n"},
		{"done\n", "done\n"},
	}
	for _, tt := range tests {
		if got := EnsureNewline(tt.in); got != tt.want {
			t.Errorf("EnsureNewline(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short input unchanged", "0x7b22", 20, "0x7b22"},
		{"exact length unchanged", "abcdefghij", 10, "abcdefghij"},
		{"keeps both ends", "0123456789abcdef", 9, "012...def"},
		{"odd split favors tail", "0123456789abcdef", 10, "012...cdef"},
		{"tiny max ignored", "0123456789", 4, "0123456789"},
		{"counts runes", "äöüßäöüßäöüß", 7, "äö...üß"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Abbreviate(tt.in, tt.max); got != tt.want {
				t.Errorf("Abbreviate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestTable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	got := Table([][2]string{
		{"salt", "0102"},
		{"original length", "5"},
	})
	want := "  salt:            0102\n  original length: 5\n"
	if got != want {
		t.Errorf("Table() =\n%q\nwant\n%q", got, want)
	}
}

func TestMultipleArguments(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	result := Code.Sprint("cpz", " ", "history")
	want := "`cpz history`"
	if result != want {
		t.Errorf("Code.Sprint with multiple args = %q, want %q", result, want)
	}
}

func forceColor(t *testing.T, disabled bool) {
	t.Helper()
	original := color.NoColor
	color.NoColor = disabled
	t.Cleanup(func() { color.NoColor = original })
}

func unsetNoColor(t *testing.T) {
	t.Helper()
	t.Setenv("NO_COLOR", "")
	if err := os.Unsetenv("NO_COLOR"); err != nil {
		t.Fatal(err)
	}
}
