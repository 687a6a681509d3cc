package rss

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example News</title>
    <item>
      <title> Rates hold </title>
      <description>&lt;p&gt;The central bank kept rates.&lt;/p&gt;</description>
      <link>https://example.com/a</link>
      <pubDate>Mon, 02 Jun 2025 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title>No link item</title>
      <description>Dropped because it has no link.</description>
    </item>
    <item>
      <title>Election recap</title>
      <description>Votes counted.</description>
      <link>https://example.com/b</link>
    </item>
    <item>
      <title>Third story</title>
      <description>More text.</description>
      <link>https://example.com/c</link>
    </item>
  </channel>
</rss>`

func TestFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeed))
	}))
	defer server.Close()

	tests := []struct {
		name     string
		limit    int
		wantURLs []string
	}{
		{
			name:     "no limit returns all linked items",
			limit:    0,
			wantURLs: []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"},
		},
		{
			name:     "limit caps items",
			limit:    2,
			wantURLs: []string{"https://example.com/a", "https://example.com/b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewFetcher().Fetch(context.Background(), server.URL, tt.limit)
			require.NoError(t, err)

			urls := make([]string, 0, len(got))
			for _, item := range got {
				urls = append(urls, item.URL)
			}
			assert.Equal(t, tt.wantURLs, urls)
		})
	}
}

func TestFetcher_Fetch_NormalizesItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeed))
	}))
	defer server.Close()

	got, err := NewFetcher().Fetch(context.Background(), server.URL, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "Rates hold", got[0].Title)
	assert.Equal(t, "The central bank kept rates.", got[0].Summary)
	assert.False(t, got[0].Published.IsZero())
}

func TestFetcher_Fetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewFetcher().Fetch(context.Background(), server.URL, 0)
	assert.Error(t, err)
}
