// Package feed proxies and normalizes RSS/Atom feeds.
package feed

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"
)

// maxItems bounds how many entries one proxy response carries.
const maxItems = 20

var (
	// ErrTimeout marks an upstream fetch that ran out of time.
	ErrTimeout = errors.New("feed fetch timed out")
	// ErrFetch marks an unreachable upstream or a non-2xx response.
	ErrFetch = errors.New("feed fetch failed")
	// ErrParse marks a response body that is not a valid feed.
	ErrParse = errors.New("feed parse failed")
)

// Feed is the normalized proxy response.
type Feed struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Item is one normalized feed entry.
type Item struct {
	Title          string `json:"title"`
	Link           string `json:"link"`
	PubDate        string `json:"pubDate"`
	Content        string `json:"content,omitempty"`
	ContentSnippet string `json:"contentSnippet,omitempty"`
}

// Client fetches and parses remote feeds.
type Client struct {
	http   *resty.Client
	parser *gofeed.Parser
	log    zerolog.Logger
}

// NewClient wires the feed client with the upstream timeout.
func NewClient(timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		http: resty.New().
			SetHeader("User-Agent", "deskchat-server/1.0").
			SetTimeout(timeout).
			SetRetryCount(0),
		parser: gofeed.NewParser(),
		log:    log.With().Str("component", "feed-client").Logger(),
	}
}

// Fetch downloads and parses one feed URL. Errors wrap ErrTimeout, ErrFetch
// or ErrParse so the HTTP boundary can classify them.
func (c *Client) Fetch(ctx context.Context, url string) (*Feed, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		if isTimeout(err) {
			c.log.Warn().Str("url", url).Msg("feed fetch timed out")
			return nil, fmt.Errorf("%w: %s", ErrTimeout, url)
		}
		c.log.Error().Err(err).Str("url", url).Msg("feed fetch failed")
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if resp.IsError() {
		c.log.Error().Int("status", resp.StatusCode()).Str("url", url).Msg("feed fetch HTTP error")
		return nil, fmt.Errorf("%w: upstream status %d", ErrFetch, resp.StatusCode())
	}

	parsed, err := c.parser.ParseString(resp.String())
	if err != nil {
		c.log.Error().Err(err).Str("url", url).Msg("feed parse failed")
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return normalize(parsed), nil
}

func normalize(parsed *gofeed.Feed) *Feed {
	out := &Feed{
		Title: parsed.Title,
		Items: make([]Item, 0, maxItems),
	}
	for _, item := range parsed.Items {
		if len(out.Items) == maxItems {
			break
		}
		out.Items = append(out.Items, Item{
			Title:          item.Title,
			Link:           item.Link,
			PubDate:        item.Published,
			Content:        item.Content,
			ContentSnippet: item.Description,
		})
	}
	return out
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
