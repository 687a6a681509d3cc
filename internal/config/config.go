package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Feeds     []FeedConfig    `mapstructure:"feeds" validate:"min=1,dive"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// FeedConfig maps a news category to its RSS feed URL.
type FeedConfig struct {
	Category string `mapstructure:"category" validate:"required"`
	URL      string `mapstructure:"url" validate:"required,url"`
}

type ProvidersConfig struct {
	Groq          ProviderConfig `mapstructure:"groq"`
	XAI           ProviderConfig `mapstructure:"xai"`
	Gemini        ProviderConfig `mapstructure:"gemini"`
	RetryAttempts uint           `mapstructure:"retry_attempts"`
}

type ProviderConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type TelegramConfig struct {
	Token         string `mapstructure:"token"`
	ChatID        string `mapstructure:"chat_id"`
	WebhookURL    string `mapstructure:"webhook_url"`
	ListenAddress string `mapstructure:"listen_address"`
}

type ScheduleConfig struct {
	Timezone           string   `mapstructure:"timezone" validate:"required"`
	SendTimes          []string `mapstructure:"send_times" validate:"min=1,dive,hhmm"`
	FetchIntervalHours int      `mapstructure:"fetch_interval_hours" validate:"min=1"`
	VocabIntervalHours int      `mapstructure:"vocab_interval_hours" validate:"min=1"`
	NewsPerCategory    int      `mapstructure:"news_per_category" validate:"min=1"`
	VocabCardCount     int      `mapstructure:"vocab_card_count" validate:"min=1"`
}

// Location resolves the configured timezone.
func (c ScheduleConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("time.LoadLocation(%s) > %w", c.Timezone, err)
	}
	return loc, nil
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/vocanews")
	}

	v.SetDefault("database.path", "vocanews.db")
	v.SetDefault("feeds", []map[string]string{
		{"category": "Economy", "url": "https://feeds.bbci.co.uk/news/business/rss.xml"},
		{"category": "Society", "url": "https://feeds.bbci.co.uk/news/uk/rss.xml"},
		{"category": "World", "url": "https://feeds.bbci.co.uk/news/world/rss.xml"},
	})
	v.SetDefault("providers.groq.model", "llama-3.3-70b-versatile")
	v.SetDefault("providers.xai.model", "grok-beta")
	v.SetDefault("providers.gemini.model", "gemini-2.5-flash-lite")
	v.SetDefault("providers.retry_attempts", 3)
	v.SetDefault("telegram.listen_address", ":5000")
	v.SetDefault("schedule.timezone", "Asia/Seoul")
	v.SetDefault("schedule.send_times", []string{"06:00", "12:00", "18:00"})
	v.SetDefault("schedule.fetch_interval_hours", 1)
	v.SetDefault("schedule.vocab_interval_hours", 3)
	v.SetDefault("schedule.news_per_category", 5)
	v.SetDefault("schedule.vocab_card_count", 5)

	// Secrets are bound to environment variables only (not from config file)
	envBindings := map[string]string{
		"providers.groq.api_key":   "GROQ_API_KEY",
		"providers.xai.api_key":    "XAI_API_KEY",
		"providers.gemini.api_key": "GEMINI_API_KEY",
		"telegram.token":           "TELEGRAM_TOKEN",
		"telegram.chat_id":         "TELEGRAM_CHAT_ID",
		"telegram.webhook_url":     "WEBHOOK_URL",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration and returns translated error messages.
func (c *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return fmt.Errorf("newValidator() > %w", err)
	}

	if err := validate.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("validate.Struct() > %w", err)
		}
		messages := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			messages = append(messages, fieldError.Translate(trans))
		}
		return fmt.Errorf("invalid configuration: %v", messages)
	}
	return nil
}
