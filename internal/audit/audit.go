package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/cpz/internal/configs"
	"github.com/google/uuid"
)

const (
	OpEncrypt = "encrypt"
	OpDecrypt = "decrypt"
	OpSeal    = "seal"
	OpUnseal  = "unseal"
	OpAccount = "account"

	timestampLayout = "2006-01-02T15:04:05.000000Z"
)

// Entry is a single history record.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"ts"`
	User      string `json:"user"`
	Operation string `json:"op"`

	Files   []string `json:"files,omitempty"`   // encrypt/decrypt inputs
	Outputs []string `json:"outputs,omitempty"` // encrypt/decrypt outputs
	Codec   string   `json:"codec,omitempty"`   // encrypt
	Account string   `json:"account,omitempty"` // seal/unseal/account
	Skipped int      `json:"skipped,omitempty"` // decrypt inputs without .cpz
}

// NewEntry returns an entry for op with the id and user filled in.
func NewEntry(op string) Entry {
	return Entry{
		ID:        uuid.New().String(),
		User:      configs.UserCPZSettings.Username,
		Operation: op,
	}
}

// LogPath returns the path to the history file.
func LogPath() string {
	return filepath.Join(configs.UserCPZSettings.DataPath, "history.jsonl")
}

// Log appends an entry to the history. Failures are ignored.
func Log(entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(timestampLayout)
	}

	logPath := LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the history.
// Returns nil if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(LogPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data. Malformed lines are skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, scanner.Err()
}

// Tail returns the last n entries, or all of them when n <= 0.
func Tail(entries []Entry, n int) []Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[len(entries)-n:]
}
