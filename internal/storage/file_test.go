package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStore_AppendAndReadAll(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "messages.log")
	st, err := NewFileStore(p)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}

	r1 := Record{Timestamp: time.Unix(1, 0).UTC(), Author: "alice#0001", Content: "hi", MessageID: "m1", Channel: "general", Guild: "home"}
	r2 := Record{Timestamp: time.Unix(2, 0).UTC(), Author: "bob#0002", Content: "plan the heist", MessageID: "m2", Channel: "general", Guild: "home", IsSuspicious: true}
	if err := st.Append(r1); err != nil {
		t.Fatalf("append1: %v", err)
	}
	if err := st.Append(r2); err != nil {
		t.Fatalf("append2: %v", err)
	}

	records, skipped, err := st.ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("unexpected skipped count: %d", skipped)
	}
	if len(records) != 2 {
		t.Fatalf("want 2 records, got %d", len(records))
	}
	if records[0].Author != "alice#0001" || records[1].Author != "bob#0002" {
		t.Fatalf("order mismatch: %+v", records)
	}
	if !records[1].IsSuspicious {
		t.Fatalf("suspicion flag lost on round trip")
	}
	if !records[0].Timestamp.Equal(r1.Timestamp) {
		t.Fatalf("timestamp mismatch: %v", records[0].Timestamp)
	}
}

func TestFileStore_MissingFileReadsEmpty(t *testing.T) {
	st, err := NewFileStore(filepath.Join(t.TempDir(), "never-written.log"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	records, skipped, err := st.ReadAll()
	if err != nil {
		t.Fatalf("read of absent log should not fail: %v", err)
	}
	if len(records) != 0 || skipped != 0 {
		t.Fatalf("want empty result, got %d records, %d skipped", len(records), skipped)
	}
}

func TestFileStore_MalformedLineSkippedNotFatal(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "messages.log")
	st, err := NewFileStore(p)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	if err := st.Append(Record{Author: "alice#0001", Content: "one", MessageID: "m1"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	f, err := os.OpenFile(p, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("{not json\n"); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	_ = f.Close()
	if err := st.Append(Record{Author: "alice#0001", Content: "two", MessageID: "m2"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	records, skipped, err := st.ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if skipped != 1 {
		t.Fatalf("want 1 skipped line, got %d", skipped)
	}
	if len(records) != 2 || records[0].MessageID != "m1" || records[1].MessageID != "m2" {
		t.Fatalf("surviving records wrong: %+v", records)
	}
}

func TestFileStore_ReadErrorIsDistinct(t *testing.T) {
	dir := t.TempDir()
	// a directory at the log path makes open fail with a real error
	p := filepath.Join(dir, "messages.log")
	if err := os.Mkdir(p, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	st := &FileStore{path: p}
	_, _, err := st.ReadAll()
	if err == nil {
		t.Fatalf("expected read error")
	}
	if !errors.Is(err, ErrRead) {
		t.Fatalf("want ErrRead, got %v", err)
	}
}
