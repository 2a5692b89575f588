package telegram

import (
	"errors"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"chat-sentry/internal/viewer"
)

// handleCallback maps a raw button press onto the closed viewer event
// set and applies it. Rejections are answered as a toast to the pressing
// user only; nobody else sees anything.
func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	sessionID, ev, ok := parseCallback(cb.Data)
	if !ok {
		b.answerCallback(cb.ID, "")
		return
	}

	session := b.viewers.Get(sessionID)
	if session == nil {
		b.answerCallback(cb.ID, "This viewer has expired.")
		return
	}

	res, err := session.Handle(cb.From.ID, ev)
	if err != nil {
		switch {
		case errors.Is(err, viewer.ErrNotRequester):
			b.answerCallback(cb.ID, "Only the operator who opened this viewer can use it.")
		case errors.Is(err, viewer.ErrClosed):
			b.answerCallback(cb.ID, "This viewer has expired.")
		case errors.Is(err, viewer.ErrBadIndex):
			b.answerCallback(cb.ID, "That message no longer exists.")
		default:
			log.Printf("viewer event failed: %v", err)
			b.answerCallback(cb.ID, "Something went wrong.")
		}
		return
	}

	b.answerCallback(cb.ID, "")

	if ev.Kind == viewer.Close {
		if cb.Message != nil {
			edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, "Viewer closed.")
			if _, err := b.s.Send(edit); err != nil {
				log.Printf("failed to edit closed viewer: %v", err)
			}
		}
		return
	}

	if res.Detail != nil {
		// detail goes to the requester's direct chat only
		out := tgbotapi.NewMessage(cb.From.ID, renderDetail(*res.Detail))
		if _, err := b.s.Send(out); err != nil {
			log.Printf("failed to send detail view: %v", err)
		}
		return
	}

	if cb.Message != nil {
		text, kb := renderPage(session.ID, session.Target, res.Page, b.pageSize)
		edit := tgbotapi.NewEditMessageTextAndMarkup(cb.Message.Chat.ID, cb.Message.MessageID, text, kb)
		if _, err := b.s.Send(edit); err != nil {
			log.Printf("failed to update viewer page: %v", err)
		}
	}
}

// parseCallback decodes "v:<sessionID>:prev|next|close|sel:<i>".
func parseCallback(data string) (string, viewer.Event, bool) {
	parts := strings.Split(data, ":")
	if len(parts) < 3 || parts[0] != "v" {
		return "", viewer.Event{}, false
	}
	sessionID := parts[1]
	switch parts[2] {
	case "prev":
		return sessionID, viewer.Event{Kind: viewer.Prev}, true
	case "next":
		return sessionID, viewer.Event{Kind: viewer.Next}, true
	case "close":
		return sessionID, viewer.Event{Kind: viewer.Close}, true
	case "sel":
		if len(parts) != 4 {
			return "", viewer.Event{}, false
		}
		idx, err := strconv.Atoi(parts[3])
		if err != nil {
			return "", viewer.Event{}, false
		}
		return sessionID, viewer.Event{Kind: viewer.Select, Index: idx}, true
	}
	return "", viewer.Event{}, false
}

func (b *Bot) answerCallback(id, text string) {
	if _, err := b.s.Request(tgbotapi.NewCallback(id, text)); err != nil {
		log.Printf("failed to answer callback: %v", err)
	}
}
