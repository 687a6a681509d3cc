package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		env           map[string]string
		wantErr       string
		assertConfig  func(t *testing.T, cfg *Config)
	}{
		{
			name: "defaults",
			assertConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "vocanews.db", cfg.Database.Path)
				require.Len(t, cfg.Feeds, 3)
				assert.Equal(t, "Economy", cfg.Feeds[0].Category)
				assert.Equal(t, "llama-3.3-70b-versatile", cfg.Providers.Groq.Model)
				assert.Equal(t, "grok-beta", cfg.Providers.XAI.Model)
				assert.Equal(t, "gemini-2.5-flash-lite", cfg.Providers.Gemini.Model)
				assert.Equal(t, uint(3), cfg.Providers.RetryAttempts)
				assert.Equal(t, "Asia/Seoul", cfg.Schedule.Timezone)
				assert.Equal(t, []string{"06:00", "12:00", "18:00"}, cfg.Schedule.SendTimes)
				assert.Equal(t, 3, cfg.Schedule.VocabIntervalHours)
				assert.Equal(t, 5, cfg.Schedule.NewsPerCategory)
			},
		},
		{
			name: "config file overrides defaults",
			configContent: `database:
  path: /tmp/study.db
feeds:
  - category: Tech
    url: https://example.com/tech.xml
schedule:
  timezone: UTC
  send_times:
    - "09:30"
  vocab_interval_hours: 6
`,
			assertConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/tmp/study.db", cfg.Database.Path)
				require.Len(t, cfg.Feeds, 1)
				assert.Equal(t, "Tech", cfg.Feeds[0].Category)
				assert.Equal(t, "UTC", cfg.Schedule.Timezone)
				assert.Equal(t, []string{"09:30"}, cfg.Schedule.SendTimes)
				assert.Equal(t, 6, cfg.Schedule.VocabIntervalHours)
			},
		},
		{
			name: "secrets from environment",
			env: map[string]string{
				"GROQ_API_KEY":     "groq-key",
				"TELEGRAM_TOKEN":   "bot-token",
				"TELEGRAM_CHAT_ID": "12345",
			},
			assertConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "groq-key", cfg.Providers.Groq.APIKey)
				assert.Equal(t, "bot-token", cfg.Telegram.Token)
				assert.Equal(t, "12345", cfg.Telegram.ChatID)
			},
		},
		{
			name: "invalid send time",
			configContent: `schedule:
  send_times:
    - "25:00"
`,
			wantErr: "invalid configuration",
		},
		{
			name: "invalid feed url",
			configContent: `feeds:
  - category: Tech
    url: not-a-url
`,
			wantErr: "invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			configFile := ""
			if tt.configContent != "" {
				configFile = filepath.Join(t.TempDir(), "config.yml")
				require.NoError(t, os.WriteFile(configFile, []byte(tt.configContent), 0644))
			}

			cfg, err := Load(configFile)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.assertConfig(t, cfg)
		})
	}
}

func TestScheduleConfig_Location(t *testing.T) {
	loc, err := ScheduleConfig{Timezone: "Asia/Seoul"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Seoul", loc.String())

	_, err = ScheduleConfig{Timezone: "Not/AZone"}.Location()
	assert.Error(t, err)
}
