package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleRunCommand(t *testing.T) {
	t.Run("broken configuration", func(t *testing.T) {
		clearSecrets(t)
		setupBrokenConfigFile(t)

		err := newScheduleRunCommand().Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration")
	})

	t.Run("missing telegram credentials", func(t *testing.T) {
		clearSecrets(t)
		t.Setenv("GROQ_API_KEY", "test-key")
		setupTestConfig(t)

		err := newScheduleRunCommand().Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TELEGRAM_TOKEN")
	})
}
