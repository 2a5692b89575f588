package ingest

import (
	"context"
	"fmt"
	"time"

	"chat-sentry/internal/classifier"
	"chat-sentry/internal/storage"
)

// Message is an incoming chat message as seen by the pipeline, already
// stripped of platform-specific shapes.
type Message struct {
	Author    string // compound author key, e.g. "alice#0001"
	FromBot   bool
	Content   string
	MessageID string
	Channel   string
	Guild     string
}

// Pipeline classifies qualifying messages and appends them to the store.
type Pipeline struct {
	store      storage.Store
	classifier classifier.Classifier
	now        func() time.Time
}

func New(store storage.Store, cls classifier.Classifier) *Pipeline {
	return &Pipeline{store: store, classifier: cls, now: time.Now}
}

// Ingest records one message. Empty messages and messages authored by
// bots are dropped without classification. A storage failure is returned
// to the caller to log; it must not stop processing of later messages.
func (p *Pipeline) Ingest(ctx context.Context, msg Message) error {
	if msg.Content == "" || msg.FromBot {
		return nil
	}
	suspicious, err := p.classifier.Suspicious(ctx, msg.Content)
	if err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	rec := storage.Record{
		Timestamp:    p.now().UTC(),
		Author:       msg.Author,
		Content:      msg.Content,
		MessageID:    msg.MessageID,
		Channel:      msg.Channel,
		Guild:        msg.Guild,
		IsSuspicious: suspicious,
	}
	if err := p.store.Append(rec); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// AuthorKey builds the stable compound identity for a platform user.
func AuthorKey(username string, id int64) string {
	return fmt.Sprintf("%s#%d", username, id)
}
