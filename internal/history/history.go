package history

import (
	"fmt"
	"log"

	"chat-sentry/internal/storage"
)

// Service answers "what did this user write" questions over the record
// log. Results keep original arrival order.
type Service struct {
	store storage.Store
}

func New(store storage.Store) *Service {
	return &Service{store: store}
}

// ByAuthor returns every record written by the given compound author
// key. No matches is an empty result, not an error; a failing store scan
// surfaces as an error so the caller can distinguish the two.
func (s *Service) ByAuthor(author string) ([]storage.Record, error) {
	records, skipped, err := s.store.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("scan log: %w", err)
	}
	if skipped > 0 {
		log.Printf("history: skipped %d malformed log entries", skipped)
	}
	var out []storage.Record
	for _, rec := range records {
		if rec.Author == author {
			out = append(out, rec)
		}
	}
	return out, nil
}
