// Package briefing orchestrates feed fetching, AI curation and Telegram delivery.
package briefing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vocanews/vocanews/internal/config"
	"github.com/vocanews/vocanews/internal/digest"
	"github.com/vocanews/vocanews/internal/inference"
	"github.com/vocanews/vocanews/internal/news"
	"github.com/vocanews/vocanews/internal/rss"
	"github.com/vocanews/vocanews/internal/settings"
	"github.com/vocanews/vocanews/internal/telegram"
	"github.com/vocanews/vocanews/internal/vocab"
)

const (
	maxItemsPerFeed = 15
	maxUnsentNews   = 10
)

// Fetcher downloads feed items.
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string, limit int) ([]rss.Item, error)
}

// Notifier delivers messages to the user's chat.
type Notifier interface {
	SendMessage(ctx context.Context, params telegram.SendMessageParams) error
}

// Service runs the study assistant workflows.
type Service struct {
	newsRepo     news.NewsRepository
	vocabRepo    vocab.VocabRepository
	settingsRepo settings.SettingsRepository
	fetcher      Fetcher
	inference    inference.Client
	notifier     Notifier
	feeds        []config.FeedConfig
	schedule     config.ScheduleConfig
	location     *time.Location

	// categoryPause spaces out AI calls between categories.
	categoryPause time.Duration
	now           func() time.Time
}

// ServiceParams holds the dependencies of a Service.
type ServiceParams struct {
	NewsRepo     news.NewsRepository
	VocabRepo    vocab.VocabRepository
	SettingsRepo settings.SettingsRepository
	Fetcher      Fetcher
	Inference    inference.Client
	Notifier     Notifier
	Feeds        []config.FeedConfig
	Schedule     config.ScheduleConfig
	Location     *time.Location
}

func New(params ServiceParams) *Service {
	return &Service{
		newsRepo:      params.NewsRepo,
		vocabRepo:     params.VocabRepo,
		settingsRepo:  params.SettingsRepo,
		fetcher:       params.Fetcher,
		inference:     params.Inference,
		notifier:      params.Notifier,
		feeds:         params.Feeds,
		schedule:      params.Schedule,
		location:      params.Location,
		categoryPause: 2 * time.Second,
		now:           time.Now,
	}
}

// FetchNews pulls every configured feed, curates the new items per category
// and stores them. It returns the number of newly stored articles.
func (s *Service) FetchNews(ctx context.Context) (int, error) {
	total := 0
	for i, feed := range s.feeds {
		if i > 0 && s.categoryPause > 0 {
			select {
			case <-ctx.Done():
				return total, ctx.Err()
			case <-time.After(s.categoryPause):
			}
		}

		inserted, err := s.fetchCategory(ctx, feed)
		if err != nil {
			// One broken feed or provider outage should not stop the rest.
			slog.Default().Error("failed to fetch category",
				"category", feed.Category,
				"error", err)
			continue
		}
		total += inserted
	}

	if err := s.settingsRepo.Set(ctx, settings.KeyLastNewsFetch,
		s.now().In(s.location).Format("2006-01-02 15:04")); err != nil {
		return total, fmt.Errorf("settingsRepo.Set > %w", err)
	}
	return total, nil
}

func (s *Service) fetchCategory(ctx context.Context, feed config.FeedConfig) (int, error) {
	items, err := s.fetcher.Fetch(ctx, feed.URL, maxItemsPerFeed)
	if err != nil {
		return 0, fmt.Errorf("fetcher.Fetch > %w", err)
	}

	fresh := make([]inference.RawArticle, 0, len(items))
	for _, item := range items {
		exists, err := s.newsRepo.ExistsByURL(ctx, item.URL)
		if err != nil {
			return 0, fmt.Errorf("newsRepo.ExistsByURL > %w", err)
		}
		if exists {
			continue
		}
		fresh = append(fresh, inference.RawArticle{
			Title:   item.Title,
			Summary: item.Summary,
			URL:     item.URL,
		})
	}
	if len(fresh) == 0 {
		slog.Default().Debug("no new feed items", "category", feed.Category)
		return 0, nil
	}

	curated, err := s.inference.CurateNews(ctx, inference.CurateNewsRequest{
		Category: feed.Category,
		Limit:    s.schedule.NewsPerCategory,
		Articles: fresh,
	})
	if err != nil {
		return 0, fmt.Errorf("inference.CurateNews > %w", err)
	}

	date := s.now().In(s.location).Format("2006-01-02")
	articles := make([]news.Article, 0, len(curated.Articles))
	for _, article := range curated.Articles {
		articles = append(articles, news.Article{
			Date:     date,
			Title:    article.Title,
			Summary:  article.Summary,
			URL:      article.URL,
			Category: feed.Category,
		})
	}

	inserted, err := s.newsRepo.SaveBulk(ctx, articles)
	if err != nil {
		return inserted, fmt.Errorf("newsRepo.SaveBulk > %w", err)
	}
	slog.Default().Info("fetched category",
		"category", feed.Category,
		"fresh", len(fresh),
		"stored", inserted)
	return inserted, nil
}

// SendNews delivers today's oldest unsent articles as one briefing. Articles
// are marked as sent only after delivery succeeds. It returns the number of
// delivered articles.
func (s *Service) SendNews(ctx context.Context) (int, error) {
	today := s.now().In(s.location).Format("2006-01-02")
	articles, err := s.newsRepo.FindUnsent(ctx, today, maxUnsentNews)
	if err != nil {
		return 0, fmt.Errorf("newsRepo.FindUnsent > %w", err)
	}
	if len(articles) == 0 {
		slog.Default().Info("no unsent news")
		return 0, nil
	}

	text, keyboard := digest.NewsMessage(articles, s.now().In(s.location))
	if err := s.notifier.SendMessage(ctx, telegram.SendMessageParams{
		Text:           text,
		DisablePreview: true,
		Keyboard:       keyboard,
	}); err != nil {
		return 0, fmt.Errorf("notifier.SendMessage > %w", err)
	}

	sent := articles
	if len(sent) > 5 {
		sent = sent[:5]
	}
	ids := make([]int64, 0, len(sent))
	for _, article := range sent {
		ids = append(ids, article.ID)
	}
	if err := s.newsRepo.MarkSent(ctx, ids); err != nil {
		return len(ids), fmt.Errorf("newsRepo.MarkSent > %w", err)
	}
	return len(ids), nil
}

// SendVocabCards delivers a set of random active words, or an all-learned
// card when none remain. It returns the number of delivered words.
func (s *Service) SendVocabCards(ctx context.Context) (int, error) {
	words, err := s.vocabRepo.RandomUnlearned(ctx, s.schedule.VocabCardCount)
	if err != nil {
		return 0, fmt.Errorf("vocabRepo.RandomUnlearned > %w", err)
	}

	var text string
	var keyboard *telegram.InlineKeyboardMarkup
	if len(words) == 0 {
		text, keyboard = digest.AllLearnedMessage()
	} else {
		text, keyboard = digest.VocabMessage(words, s.now().In(s.location))
	}
	if err := s.notifier.SendMessage(ctx, telegram.SendMessageParams{
		Text:           text,
		DisablePreview: true,
		Keyboard:       keyboard,
	}); err != nil {
		return 0, fmt.Errorf("notifier.SendMessage > %w", err)
	}

	if len(words) > 0 {
		ids := make([]int64, 0, len(words))
		for _, word := range words {
			ids = append(ids, word.ID)
		}
		if err := s.vocabRepo.IncrementUsage(ctx, ids); err != nil {
			return len(words), fmt.Errorf("vocabRepo.IncrementUsage > %w", err)
		}
	}
	return len(words), nil
}

// ExtractVocab asks the AI to pick words from a text and stores them in the
// given book. It returns the number of newly stored words.
func (s *Service) ExtractVocab(ctx context.Context, book, text string, count int) (int, error) {
	response, err := s.inference.GenerateVocabCards(ctx, inference.GenerateVocabCardsRequest{
		Text:  text,
		Count: count,
	})
	if err != nil {
		return 0, fmt.Errorf("inference.GenerateVocabCards > %w", err)
	}
	if len(response.Cards) == 0 {
		return 0, nil
	}

	date := s.now().In(s.location).Format("2006-01-02")
	words := make([]vocab.Word, 0, len(response.Cards))
	for _, card := range response.Cards {
		words = append(words, vocab.Word{
			Book:      book,
			Word:      card.Word,
			Meaning:   card.Meaning,
			Grammar:   card.Grammar,
			Sentence:  card.Sentence,
			Example:   card.Example,
			AddedDate: date,
		})
	}
	inserted, err := s.vocabRepo.AddBulk(ctx, words)
	if err != nil {
		return inserted, fmt.Errorf("vocabRepo.AddBulk > %w", err)
	}
	return inserted, nil
}
