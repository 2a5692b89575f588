package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type ClassifierProvider string

const (
	ProviderKeyword ClassifierProvider = "keyword"
	ProviderOpenAI  ClassifierProvider = "openai"
)

type Config struct {
	TelegramBotToken string  `env:"TELEGRAM_BOT_TOKEN,required"`
	AdminUserID      int64   `env:"ADMIN_USER"`
	OperatorUsers    []int64 `env:"OPERATOR_USERS" envSeparator:":"`

	// Storage
	LogFilePath       string `env:"LOG_FILE_PATH" envDefault:"logs/messages.log"`
	OperatorsFilePath string `env:"OPERATORS_FILE_PATH" envDefault:"data/operators.json"`

	// Viewer
	PageSize   int           `env:"PAGE_SIZE" envDefault:"5"`
	ViewerTTL  time.Duration `env:"VIEWER_TTL" envDefault:"60s"`
	DigestCron string        `env:"DIGEST_CRON" envDefault:"0 21 * * *"`

	// Classifier
	Classifier    ClassifierProvider `env:"CLASSIFIER" envDefault:"keyword"`
	ExtraKeywords []string           `env:"EXTRA_KEYWORDS" envSeparator:","`
	OpenAIAPIKey  string             `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string             `env:"OPENAI_BASE_URL"`
	OpenAIModel   string             `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
