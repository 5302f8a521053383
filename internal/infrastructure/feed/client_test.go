package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rssDocument(itemCount int) string {
	var items strings.Builder
	for i := 1; i <= itemCount; i++ {
		fmt.Fprintf(&items, `
			<item>
				<title>Item %d</title>
				<link>https://example.com/%d</link>
				<pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
				<description>Summary %d</description>
			</item>`, i, i, i)
	}
	return `<?xml version="1.0" encoding="UTF-8"?>
		<rss version="2.0">
			<channel>
				<title>Example Feed</title>
				<link>https://example.com</link>` + items.String() + `
			</channel>
		</rss>`
}

func TestFetchParsesAndNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssDocument(2))
	}))
	defer srv.Close()

	client := NewClient(2*time.Second, zerolog.Nop())
	result, err := client.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Example Feed", result.Title)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Item 1", result.Items[0].Title)
	assert.Equal(t, "https://example.com/1", result.Items[0].Link)
	assert.Equal(t, "Mon, 02 Jan 2006 15:04:05 GMT", result.Items[0].PubDate)
	assert.Equal(t, "Summary 1", result.Items[0].ContentSnippet)
}

func TestFetchCapsItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, rssDocument(maxItems+15))
	}))
	defer srv.Close()

	client := NewClient(2*time.Second, zerolog.Nop())
	result, err := client.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, result.Items, maxItems)
}

func TestFetchClassifiesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(2*time.Second, zerolog.Nop())
	_, err := client.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestFetchClassifiesUnreachableHost(t *testing.T) {
	client := NewClient(2*time.Second, zerolog.Nop())
	_, err := client.Fetch(context.Background(), "http://127.0.0.1:1/feed.xml")
	assert.ErrorIs(t, err, ErrFetch)
}

func TestFetchClassifiesTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		fmt.Fprint(w, rssDocument(1))
	}))
	defer srv.Close()

	client := NewClient(50*time.Millisecond, zerolog.Nop())
	_, err := client.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestFetchClassifiesParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body>not a feed</body></html>")
	}))
	defer srv.Close()

	client := NewClient(2*time.Second, zerolog.Nop())
	_, err := client.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrParse)
}
