package pdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocanews/vocanews/internal/vocab"
)

func TestWordbookMarkdown(t *testing.T) {
	words := []vocab.Word{
		{Word: "tariff", Meaning: "a tax on imports", Grammar: "noun", Sentence: "The tariff hurt exporters.", Example: "Tariffs raised prices.", Status: vocab.StatusActive},
		{Word: "subsidy", Meaning: "financial support", Status: vocab.StatusMemorized},
	}

	got := WordbookMarkdown("news", words)

	assert.Contains(t, got, "# Wordbook: news")
	assert.Contains(t, got, "2 words")
	assert.Contains(t, got, "## tariff")
	assert.Contains(t, got, "- Meaning: a tax on imports")
	assert.Contains(t, got, "- Grammar: noun")
	assert.Contains(t, got, "- Seen in: The tariff hurt exporters.")
	assert.Contains(t, got, "## subsidy")
	assert.Contains(t, got, "- Status: memorized")
	// Empty fields are omitted.
	assert.Equal(t, 1, strings.Count(got, "- Grammar:"))
}

func TestExportWordbook(t *testing.T) {
	dir := t.TempDir()
	words := []vocab.Word{
		{Word: "tariff", Meaning: "a tax on imports", Status: vocab.StatusActive},
	}

	pdfPath, err := ExportWordbook("news", words, dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(pdfPath, "news.pdf"))

	_, err = os.Stat(pdfPath)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "news.md"))
	assert.NoError(t, err)
}

func TestExportWordbook_EmptyBook(t *testing.T) {
	_, err := ExportWordbook("empty", nil, t.TempDir())
	assert.Error(t, err)
}
