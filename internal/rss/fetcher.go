// Package rss fetches and normalizes feed items.
package rss

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Item is a single normalized feed entry.
type Item struct {
	Title     string
	Summary   string
	URL       string
	Published time.Time
}

type Fetcher struct {
	parser *gofeed.Parser
}

func NewFetcher() *Fetcher {
	return &Fetcher{parser: gofeed.NewParser()}
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Fetch downloads a feed and returns up to limit items. A limit of zero
// returns every item.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string, limit int) ([]Item, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parser.ParseURLWithContext(%s) > %w", feedURL, err)
	}

	items := make([]Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if limit > 0 && len(items) >= limit {
			break
		}
		if entry.Link == "" {
			continue
		}
		var published time.Time
		if entry.PublishedParsed != nil {
			published = *entry.PublishedParsed
		}
		items = append(items, Item{
			Title:     strings.TrimSpace(entry.Title),
			Summary:   stripTags(entry.Description),
			URL:       entry.Link,
			Published: published,
		})
	}
	return items, nil
}

// stripTags removes HTML markup that feeds often embed in descriptions.
func stripTags(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}
