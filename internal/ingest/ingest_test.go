package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"chat-sentry/internal/classifier"
	"chat-sentry/internal/storage"
)

type memStore struct {
	records []storage.Record
	failing bool
}

func (m *memStore) Append(rec storage.Record) error {
	if m.failing {
		return storage.ErrWrite
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *memStore) ReadAll() ([]storage.Record, int, error) {
	return m.records, 0, nil
}

func TestIngest_ClassifiesAndAppends(t *testing.T) {
	st := &memStore{}
	p := New(st, classifier.NewKeyword())
	fixed := time.Unix(100, 0)
	p.now = func() time.Time { return fixed }

	err := p.Ingest(context.Background(), Message{
		Author: "alice#0001", Content: "une bombe", MessageID: "m1", Channel: "general", Guild: "home",
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	err = p.Ingest(context.Background(), Message{
		Author: "alice#0001", Content: "good morning", MessageID: "m2", Channel: "general", Guild: "home",
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if len(st.records) != 2 {
		t.Fatalf("want 2 records, got %d", len(st.records))
	}
	if !st.records[0].IsSuspicious || st.records[1].IsSuspicious {
		t.Fatalf("suspicion flags wrong: %+v", st.records)
	}
	if !st.records[0].Timestamp.Equal(fixed.UTC()) {
		t.Fatalf("timestamp not stamped: %v", st.records[0].Timestamp)
	}
}

func TestIngest_DropsEmptyAndBotMessages(t *testing.T) {
	st := &memStore{}
	p := New(st, classifier.NewKeyword())

	if err := p.Ingest(context.Background(), Message{Author: "alice#0001", Content: ""}); err != nil {
		t.Fatalf("empty content: %v", err)
	}
	if err := p.Ingest(context.Background(), Message{Author: "robo#0009", FromBot: true, Content: "beep"}); err != nil {
		t.Fatalf("bot author: %v", err)
	}
	if len(st.records) != 0 {
		t.Fatalf("nothing should be recorded, got %+v", st.records)
	}
}

func TestIngest_StorageFailureIsReportedNotFatal(t *testing.T) {
	st := &memStore{failing: true}
	p := New(st, classifier.NewKeyword())

	err := p.Ingest(context.Background(), Message{Author: "alice#0001", Content: "hello"})
	if !errors.Is(err, storage.ErrWrite) {
		t.Fatalf("want wrapped ErrWrite, got %v", err)
	}

	// the pipeline stays usable for the next message
	st.failing = false
	if err := p.Ingest(context.Background(), Message{Author: "alice#0001", Content: "hello again"}); err != nil {
		t.Fatalf("ingest after failure: %v", err)
	}
	if len(st.records) != 1 {
		t.Fatalf("want 1 record, got %d", len(st.records))
	}
}

func TestAuthorKey(t *testing.T) {
	if got := AuthorKey("alice", 1); got != "alice#1" {
		t.Fatalf("unexpected key: %q", got)
	}
}
