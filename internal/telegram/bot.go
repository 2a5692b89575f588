package telegram

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"chat-sentry/internal/analytics"
	"chat-sentry/internal/auth"
	"chat-sentry/internal/history"
	"chat-sentry/internal/ingest"
	"chat-sentry/internal/storage"
	"chat-sentry/internal/viewer"
)

type Bot struct {
	s           sender
	api         *tgbotapi.BotAPI
	authSvc     *auth.Service
	pipeline    *ingest.Pipeline
	historySvc  *history.Service
	viewers     *viewer.Manager
	store       storage.Store
	adminUserID int64
	pageSize    int
	viewerTTL   time.Duration
}

func New(botToken string, authSvc *auth.Service, pipeline *ingest.Pipeline, historySvc *history.Service, viewers *viewer.Manager, store storage.Store, adminUserID int64, pageSize int, viewerTTL time.Duration) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		s:           botAPISender{api: api},
		api:         api,
		authSvc:     authSvc,
		pipeline:    pipeline,
		historySvc:  historySvc,
		viewers:     viewers,
		store:       store,
		adminUserID: adminUserID,
		pageSize:    pageSize,
		viewerTTL:   viewerTTL,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message != nil {
			b.handleIncomingMessage(ctx, update.Message)
			continue
		}
		if update.CallbackQuery != nil {
			b.handleCallback(update.CallbackQuery)
			continue
		}
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	if msg.From == nil {
		return
	}
	err := b.pipeline.Ingest(ctx, ingest.Message{
		Author:    ingest.AuthorKey(msg.From.UserName, msg.From.ID),
		FromBot:   msg.From.IsBot,
		Content:   msg.Text,
		MessageID: strconv.Itoa(msg.MessageID),
		Channel:   chatName(msg.Chat),
		Guild:     msg.Chat.Type,
	})
	if err != nil {
		// reported once, never retried; later messages keep flowing
		log.Printf("failed to record message %d: %v", msg.MessageID, err)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "help":
		b.sendMessage(msg.Chat.ID, "Commands:\n/messages <user#id> — browse a user's logged messages\n/digest — today's activity digest\n/grant <id> [username], /revoke <id> — manage operators (admin)")
	case "messages":
		b.handleShowMessages(msg)
	case "digest":
		b.handleDigest(msg)
	case "grant":
		b.handleGrant(msg)
	case "revoke":
		b.handleRevoke(msg)
	}
}

func (b *Bot) handleShowMessages(msg *tgbotapi.Message) {
	if !b.authSvc.IsOperator(msg.From.ID) {
		log.Printf("viewer access denied for user %d (@%s)", msg.From.ID, msg.From.UserName)
		b.sendMessage(msg.Chat.ID, "You are not allowed to review messages.")
		return
	}

	target := b.resolveTarget(msg)
	if target == "" {
		b.sendMessage(msg.Chat.ID, "Usage: /messages <user#id>, or reply to a message of the user.")
		return
	}

	records, err := b.historySvc.ByAuthor(target)
	if err != nil {
		log.Printf("history query for %q failed: %v", target, err)
		b.sendMessage(msg.Chat.ID, "Could not read the message log, try again later.")
		return
	}
	if len(records) == 0 {
		b.sendMessage(msg.Chat.ID, "No messages found for "+target+".")
		return
	}

	session, page, err := b.viewers.Open(msg.From.ID, target, records, b.pageSize, b.viewerTTL)
	if err != nil {
		log.Printf("failed to open viewer for %q: %v", target, err)
		b.sendMessage(msg.Chat.ID, "Could not open the viewer.")
		return
	}

	text, kb := renderPage(session.ID, target, page, b.pageSize)
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyMarkup = kb
	if _, err := b.s.Send(out); err != nil {
		log.Printf("failed to send viewer page: %v", err)
	}
}

func (b *Bot) handleDigest(msg *tgbotapi.Message) {
	if !b.authSvc.IsOperator(msg.From.ID) {
		b.sendMessage(msg.Chat.ID, "You are not allowed to request digests.")
		return
	}
	records, skipped, err := b.store.ReadAll()
	if err != nil {
		log.Printf("digest read failed: %v", err)
		b.sendMessage(msg.Chat.ID, "Could not read the message log, try again later.")
		return
	}
	if skipped > 0 {
		log.Printf("digest: skipped %d malformed log entries", skipped)
	}
	stats := analytics.Analyze(records, time.Now().UTC())
	b.sendMessage(msg.Chat.ID, analytics.Format(stats))
}

// SendDigest pushes a digest for the given day to the admin chat; the
// scheduler drives this.
func (b *Bot) SendDigest(day time.Time) error {
	records, _, err := b.store.ReadAll()
	if err != nil {
		return err
	}
	stats := analytics.Analyze(records, day)
	b.sendMessage(b.adminUserID, analytics.Format(stats))
	return nil
}

func (b *Bot) handleGrant(msg *tgbotapi.Message) {
	if msg.From.ID != b.adminUserID {
		b.sendMessage(msg.Chat.ID, "Admin only.")
		return
	}
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		b.sendMessage(msg.Chat.ID, "Usage: /grant <id> [username]")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		b.sendMessage(msg.Chat.ID, "Bad user id: "+args[0])
		return
	}
	op := auth.Operator{ID: id}
	if len(args) > 1 {
		op.Username = args[1]
	}
	if err := b.authSvc.Grant(op); err != nil {
		log.Printf("grant %d failed: %v", id, err)
		b.sendMessage(msg.Chat.ID, "Failed to persist the grant.")
		return
	}
	b.sendMessage(msg.Chat.ID, "Operator access granted to "+args[0]+".")
}

func (b *Bot) handleRevoke(msg *tgbotapi.Message) {
	if msg.From.ID != b.adminUserID {
		b.sendMessage(msg.Chat.ID, "Admin only.")
		return
	}
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		b.sendMessage(msg.Chat.ID, "Usage: /revoke <id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		b.sendMessage(msg.Chat.ID, "Bad user id: "+args[0])
		return
	}
	if err := b.authSvc.Revoke(id); err != nil {
		log.Printf("revoke %d failed: %v", id, err)
		b.sendMessage(msg.Chat.ID, "Failed to persist the revoke.")
		return
	}
	b.sendMessage(msg.Chat.ID, "Operator access revoked for "+args[0]+".")
}

// resolveTarget picks the author key from the command argument or, when
// the command replies to a message, from that message's author.
func (b *Bot) resolveTarget(msg *tgbotapi.Message) string {
	if arg := strings.TrimSpace(msg.CommandArguments()); arg != "" {
		return arg
	}
	if msg.ReplyToMessage != nil && msg.ReplyToMessage.From != nil {
		from := msg.ReplyToMessage.From
		return ingest.AuthorKey(from.UserName, from.ID)
	}
	return ""
}

func (b *Bot) sendMessage(chatID int64, text string) {
	out := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(out); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func chatName(chat *tgbotapi.Chat) string {
	if chat == nil {
		return ""
	}
	if chat.Title != "" {
		return chat.Title
	}
	return chat.UserName
}
