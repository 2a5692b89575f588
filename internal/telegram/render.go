package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"chat-sentry/internal/pagination"
	"chat-sentry/internal/storage"
)

const timeLayout = "02/01/2006 - 03:04:05 pm"

// renderPage projects a page into display text plus the inline keyboard
// driving the session. Pure: it never touches session state. Navigation
// buttons are emitted only when enabled, so the keyboard always agrees
// with the page it was built from.
func renderPage(sessionID, target string, page pagination.Page, pageSize int) (string, tgbotapi.InlineKeyboardMarkup) {
	var b strings.Builder
	fmt.Fprintf(&b, "Messages from %s\n\n", target)
	for i, rec := range page.Items {
		marker := ""
		if rec.IsSuspicious {
			marker = "⚠️ "
		}
		globalIndex := page.Index*pageSize + i
		fmt.Fprintf(&b, "%d. [%s] #%s\n%s%s\n\n",
			globalIndex+1, rec.Timestamp.Format(timeLayout), rec.Channel, marker, rec.Content)
	}
	fmt.Fprintf(&b, "Page %d of %d", page.Index+1, page.Count)

	var nav []tgbotapi.InlineKeyboardButton
	if page.HasPrevious {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀ Previous", callbackData(sessionID, "prev")))
	}
	if page.HasNext {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Next ▶", callbackData(sessionID, "next")))
	}
	nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Close", callbackData(sessionID, "close")))

	var sel []tgbotapi.InlineKeyboardButton
	for i := range page.Items {
		globalIndex := page.Index*pageSize + i
		sel = append(sel, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d", globalIndex+1),
			callbackData(sessionID, fmt.Sprintf("sel:%d", globalIndex)),
		))
	}

	rows := [][]tgbotapi.InlineKeyboardButton{nav}
	if len(sel) > 0 {
		rows = append(rows, sel)
	}
	return b.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// renderDetail projects one record into the standalone view shown only
// to the requester.
func renderDetail(rec storage.Record) string {
	marker := ""
	if rec.IsSuspicious {
		marker = "⚠️ flagged as suspicious\n"
	}
	return fmt.Sprintf("Message from %s\n%s%s\n\nID: %s\nChannel: #%s (%s)\nAt: %s",
		rec.Author, marker, rec.Content, rec.MessageID, rec.Channel, rec.Guild,
		rec.Timestamp.Format(timeLayout))
}

func callbackData(sessionID, op string) string {
	return "v:" + sessionID + ":" + op
}
