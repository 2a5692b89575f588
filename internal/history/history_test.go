package history

import (
	"errors"
	"testing"

	"chat-sentry/internal/storage"
)

type memStore struct {
	records []storage.Record
	err     error
}

func (m *memStore) Append(rec storage.Record) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *memStore) ReadAll() ([]storage.Record, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.records, 0, nil
}

func TestByAuthor_FiltersAndKeepsOrder(t *testing.T) {
	st := &memStore{records: []storage.Record{
		{Author: "alice#0001", MessageID: "m1"},
		{Author: "bob#0002", MessageID: "m2"},
		{Author: "alice#0001", MessageID: "m3"},
		{Author: "alice#0001", MessageID: "m4"},
	}}
	svc := New(st)

	got, err := svc.ByAuthor("alice#0001")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 records, got %d", len(got))
	}
	for i, id := range []string{"m1", "m3", "m4"} {
		if got[i].MessageID != id {
			t.Fatalf("order broken at %d: %+v", i, got)
		}
	}
}

func TestByAuthor_NoMatchesIsEmptyNotError(t *testing.T) {
	st := &memStore{records: []storage.Record{
		{Author: "alice#0001", MessageID: "m1"},
		{Author: "bob#0002", MessageID: "m2"},
	}}
	got, err := New(st).ByAuthor("carol#9999")
	if err != nil {
		t.Fatalf("no matches must not error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty, got %+v", got)
	}
}

func TestByAuthor_ReadFailureSurfaces(t *testing.T) {
	st := &memStore{err: storage.ErrRead}
	_, err := New(st).ByAuthor("alice#0001")
	if !errors.Is(err, storage.ErrRead) {
		t.Fatalf("want wrapped ErrRead, got %v", err)
	}
}
