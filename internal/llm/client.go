package llm

import "context"

type Message struct {
	Role    string
	Content string
}

// Client is the minimal completion surface the moderation layer needs.
type Client interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}
