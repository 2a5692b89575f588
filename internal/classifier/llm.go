package classifier

import (
	"context"
	"log"
	"strings"

	"chat-sentry/internal/llm"
)

const llmPrompt = "You are a chat moderation assistant. Answer with exactly " +
	"one word: YES if the message hints at violence, harassment, doxxing, " +
	"fraud or other harmful activity, NO otherwise."

// LLM asks a language model for a second opinion on top of the keyword
// vocabulary. When the model is unreachable the keyword verdict stands,
// so ingestion never stalls on the API.
type LLM struct {
	client  llm.Client
	keyword *Keyword
}

func NewLLM(client llm.Client, keyword *Keyword) *LLM {
	return &LLM{client: client, keyword: keyword}
}

func (c *LLM) Suspicious(ctx context.Context, text string) (bool, error) {
	if c.keyword.Match(text) {
		return true, nil
	}
	resp, err := c.client.Generate(ctx, []llm.Message{
		{Role: "system", Content: llmPrompt},
		{Role: "user", Content: text},
	})
	if err != nil {
		log.Printf("llm classifier unavailable, keeping keyword verdict: %v", err)
		return false, nil
	}
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(resp)), "YES"), nil
}
