package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// setConfigFile points the global config flag at the given file and restores
// it after the test.
func setConfigFile(t *testing.T, path string) {
	t.Helper()

	original := configFile
	configFile = path
	t.Cleanup(func() {
		configFile = original
	})
}

// setupTestConfig writes a minimal valid configuration with the database
// stored under a temporary directory.
func setupTestConfig(t *testing.T) {
	t.Helper()

	tempDir := t.TempDir()
	content := fmt.Sprintf("database:\n  path: %s\n", filepath.Join(tempDir, "vocanews.db"))
	path := filepath.Join(tempDir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	setConfigFile(t, path)
}

// setupBrokenConfigFile writes a config file that cannot be parsed.
func setupBrokenConfigFile(t *testing.T) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("{{invalid yaml content"), 0600))
	setConfigFile(t, path)
}

// clearSecrets blanks every secret environment variable for the test.
func clearSecrets(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"GROQ_API_KEY",
		"XAI_API_KEY",
		"GEMINI_API_KEY",
		"TELEGRAM_TOKEN",
		"TELEGRAM_CHAT_ID",
		"WEBHOOK_URL",
	} {
		t.Setenv(key, "")
	}
}
