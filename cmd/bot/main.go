package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"chat-sentry/internal/auth"
	"chat-sentry/internal/classifier"
	"chat-sentry/internal/config"
	"chat-sentry/internal/history"
	"chat-sentry/internal/ingest"
	"chat-sentry/internal/llm"
	"chat-sentry/internal/scheduler"
	"chat-sentry/internal/storage"
	"chat-sentry/internal/telegram"
	"chat-sentry/internal/viewer"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	var opRepo auth.Repository
	if cfg.OperatorsFilePath != "" {
		repo, err := auth.NewFileRepository(cfg.OperatorsFilePath)
		if err != nil {
			log.Printf("failed to init operators repo: %v", err)
		} else {
			opRepo = repo
		}
	}

	authSvc, err := auth.NewWithRepo(opRepo, cfg.OperatorUsers)
	if err != nil {
		log.Fatalf("failed to init auth: %v", err)
	}

	store, err := storage.NewFileStore(cfg.LogFilePath)
	if err != nil {
		log.Fatalf("failed to init message log: %v", err)
	}

	cls := newClassifier(cfg)
	pipeline := ingest.New(store, cls)
	historySvc := history.New(store)
	viewers := viewer.NewManager()

	bot, err := telegram.New(
		cfg.TelegramBotToken,
		authSvc,
		pipeline,
		historySvc,
		viewers,
		store,
		cfg.AdminUserID,
		cfg.PageSize,
		cfg.ViewerTTL,
	)
	if err != nil {
		log.Fatalf("failed to create bot: %v", err)
	}

	if cfg.AdminUserID != 0 {
		sched := scheduler.New(cfg.DigestCron)
		sched.SetReportFunction(func(ctx context.Context) error {
			return bot.SendDigest(time.Now().UTC())
		})
		if err := sched.Start(); err != nil {
			log.Printf("failed to start digest scheduler: %v", err)
		}
		defer sched.Stop()
	}

	bot.Start(context.Background())
}

func newClassifier(cfg *config.Config) classifier.Classifier {
	keyword := classifier.NewKeyword(cfg.ExtraKeywords...)
	switch cfg.Classifier {
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			log.Printf("CLASSIFIER=openai but no OPENAI_API_KEY, using keyword matching only")
			return keyword
		}
		client := llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
		return classifier.NewLLM(client, keyword)
	default:
		return keyword
	}
}
