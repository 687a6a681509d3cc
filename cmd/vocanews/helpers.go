package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vocanews/vocanews/internal/briefing"
	"github.com/vocanews/vocanews/internal/config"
	"github.com/vocanews/vocanews/internal/database"
	"github.com/vocanews/vocanews/internal/inference"
	"github.com/vocanews/vocanews/internal/inference/chatapi"
	"github.com/vocanews/vocanews/internal/inference/gemini"
	"github.com/vocanews/vocanews/internal/news"
	"github.com/vocanews/vocanews/internal/rss"
	"github.com/vocanews/vocanews/internal/settings"
	"github.com/vocanews/vocanews/internal/telegram"
	"github.com/vocanews/vocanews/internal/vocab"
)

const telegramRetryAttempts = 3

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func openDatabase(cfg *config.Config) (*sqlx.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open > %w", err)
	}
	return db, nil
}

// newInferenceClient builds the provider fallback chain from the configured
// API keys, in the order Groq, xAI, Gemini.
func newInferenceClient(cfg *config.Config) (inference.Client, func(), error) {
	var clients []inference.Client
	var closers []func() error

	if cfg.Providers.Groq.APIKey != "" {
		client := chatapi.NewGroqClient(cfg.Providers.Groq.APIKey, cfg.Providers.Groq.Model, cfg.Providers.RetryAttempts)
		clients = append(clients, client)
		closers = append(closers, client.Close)
	}
	if cfg.Providers.XAI.APIKey != "" {
		client := chatapi.NewXAIClient(cfg.Providers.XAI.APIKey, cfg.Providers.XAI.Model, cfg.Providers.RetryAttempts)
		clients = append(clients, client)
		closers = append(closers, client.Close)
	}
	if cfg.Providers.Gemini.APIKey != "" {
		clients = append(clients, gemini.NewClient(cfg.Providers.Gemini.APIKey, cfg.Providers.Gemini.Model, cfg.Providers.RetryAttempts))
	}
	if len(clients) == 0 {
		return nil, nil, fmt.Errorf("at least one of GROQ_API_KEY, XAI_API_KEY or GEMINI_API_KEY environment variables is required")
	}

	cleanup := func() {
		for _, closeClient := range closers {
			_ = closeClient()
		}
	}
	return inference.NewRouter(clients...), cleanup, nil
}

func newTelegramClient(cfg *config.Config) (*telegram.Client, error) {
	if cfg.Telegram.Token == "" || cfg.Telegram.ChatID == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN and TELEGRAM_CHAT_ID environment variables are required")
	}
	return telegram.NewClient(cfg.Telegram.Token, cfg.Telegram.ChatID, telegramRetryAttempts), nil
}

func newBriefingService(
	cfg *config.Config,
	db *sqlx.DB,
	inferenceClient inference.Client,
	notifier briefing.Notifier,
) (*briefing.Service, error) {
	location, err := cfg.Schedule.Location()
	if err != nil {
		return nil, err
	}
	return briefing.New(briefing.ServiceParams{
		NewsRepo:     news.NewDBNewsRepository(db),
		VocabRepo:    vocab.NewDBVocabRepository(db),
		SettingsRepo: settings.NewDBSettingsRepository(db),
		Fetcher:      rss.NewFetcher(),
		Inference:    inferenceClient,
		Notifier:     notifier,
		Feeds:        cfg.Feeds,
		Schedule:     cfg.Schedule,
		Location:     location,
	}), nil
}
