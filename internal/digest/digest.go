// Package digest renders Telegram messages for news and vocabulary briefings.
package digest

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/vocanews/vocanews/internal/news"
	"github.com/vocanews/vocanews/internal/telegram"
	"github.com/vocanews/vocanews/internal/vocab"
)

const (
	maxNewsItems    = 5
	maxSummaryLines = 3
	maxButtonTitle  = 30
)

// NewsMessage renders a briefing for the given articles with one link button
// per article. At most 5 articles are included.
func NewsMessage(articles []news.Article, now time.Time) (string, *telegram.InlineKeyboardMarkup) {
	if len(articles) > maxNewsItems {
		articles = articles[:maxNewsItems]
	}

	var builder strings.Builder
	builder.WriteString("📰 <b>News Briefing</b>\n")
	builder.WriteString(fmt.Sprintf("<i>%s</i>\n", now.Format("2006-01-02 15:04")))

	buttons := make([][]telegram.InlineKeyboardButton, 0, len(articles))
	for i, article := range articles {
		builder.WriteString(fmt.Sprintf("\n%d. <b>%s</b> [%s]\n",
			i+1, html.EscapeString(article.Title), html.EscapeString(article.Category)))
		builder.WriteString(html.EscapeString(truncateLines(article.Summary, maxSummaryLines)))
		builder.WriteString("\n")

		buttons = append(buttons, []telegram.InlineKeyboardButton{
			{Text: fmt.Sprintf("%d. %s", i+1, truncate(article.Title, maxButtonTitle)), URL: article.URL},
		})
	}

	return builder.String(), &telegram.InlineKeyboardMarkup{InlineKeyboard: buttons}
}

// VocabMessage renders a card for the given words with a refresh button.
func VocabMessage(words []vocab.Word, now time.Time) (string, *telegram.InlineKeyboardMarkup) {
	var builder strings.Builder
	builder.WriteString("📚 <b>Vocabulary Cards</b>\n")
	builder.WriteString(fmt.Sprintf("<i>%s</i>\n", now.Format("2006-01-02 15:04")))

	for _, word := range words {
		builder.WriteString(fmt.Sprintf("\n<b>%s</b>", html.EscapeString(word.Word)))
		if word.Grammar != "" {
			builder.WriteString(fmt.Sprintf(" (%s)", html.EscapeString(word.Grammar)))
		}
		builder.WriteString("\n")
		builder.WriteString(html.EscapeString(word.Meaning))
		builder.WriteString("\n")
		if word.Example != "" {
			builder.WriteString(fmt.Sprintf("<i>%s</i>\n", html.EscapeString(word.Example)))
		}
	}

	return builder.String(), refreshKeyboard()
}

// AllLearnedMessage renders the card shown when no active words remain.
func AllLearnedMessage() (string, *telegram.InlineKeyboardMarkup) {
	return "🎉 <b>All words learned!</b>\nEvery word in your books is marked as memorized. Add more words to keep going.",
		refreshKeyboard()
}

func refreshKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: "🔄 New words", CallbackData: telegram.CallbackDataVocabRefresh}},
		},
	}
}

// truncateLines keeps at most n non-empty lines of s.
func truncateLines(s string, n int) string {
	kept := make([]string, 0, n)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kept = append(kept, line)
		if len(kept) == n {
			break
		}
	}
	return strings.Join(kept, "\n")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
