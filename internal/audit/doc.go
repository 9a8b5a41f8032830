// Package audit keeps a local history of cpz operations.
//
// Each encrypt, decrypt, seal and unseal is appended as one JSON object per
// line to <data dir>/cpz/history.jsonl, which `cpz history` reads back.
// Passwords, keys and sealed secrets are never recorded.
//
// # Usage
//
//	entry := audit.NewEntry(audit.OpEncrypt)
//	entry.Files = written
//	audit.Log(entry)
//
// # Failure Handling
//
// Logging is best-effort. An unwritable history file never fails the
// operation being recorded.
//
// # Reading Logs
//
// ReadEntries parses the log; malformed lines from partial writes are
// skipped.
package audit
