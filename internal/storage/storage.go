package storage

import (
	"errors"
	"time"
)

// Record is one observed chat message with its suspicion verdict.
// The JSON field names are the on-disk contract of the log file and
// must not change once records have been written.
// Records are append-only: once written they are never mutated.
type Record struct {
	Timestamp    time.Time `json:"timestamp"`
	Author       string    `json:"author"`
	Content      string    `json:"content"`
	MessageID    string    `json:"id"`
	Channel      string    `json:"channel"`
	Guild        string    `json:"guild"`
	IsSuspicious bool      `json:"isSuspicious"`
}

var (
	// ErrWrite marks a failure to durably append a record.
	ErrWrite = errors.New("storage: write failed")
	// ErrRead marks a failure to scan the record log.
	ErrRead = errors.New("storage: read failed")
)

// Store abstracts persistence of message records.
// Implementations can be file-based, database, etc.
// ReadAll returns records in append order together with the number of
// malformed entries it skipped. Implementations must be safe for
// concurrent use.
type Store interface {
	Append(rec Record) error
	ReadAll() (records []Record, skipped int, err error)
}
