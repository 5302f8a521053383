// Package search implements the web_search backends.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"deskchat-server/internal/domain/assistant"
)

const (
	serperSearchEndpoint = "https://google.serper.dev/search"
	tavilySearchEndpoint = "https://api.tavily.com/search"

	// maxResults bounds what a single tool call hands back to the model.
	maxResults = 5
)

func newHTTPClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetHeader("User-Agent", "deskchat-server/1.0").
		SetTimeout(timeout).
		SetRetryCount(0)
}

// SerperClient queries Serper's hosted Google results.
type SerperClient struct {
	http   *resty.Client
	apiKey string
	log    zerolog.Logger
}

var _ assistant.Searcher = (*SerperClient)(nil)

// NewSerperClient builds the Serper backend.
func NewSerperClient(apiKey string, timeout time.Duration, log zerolog.Logger) *SerperClient {
	return &SerperClient{
		http:   newHTTPClient(timeout),
		apiKey: apiKey,
		log:    log.With().Str("component", "serper-client").Logger(),
	}
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Search runs one Serper query and returns up to maxResults hits.
func (c *SerperClient) Search(ctx context.Context, query string) ([]assistant.SearchResult, error) {
	var res serperResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"q":   query,
			"num": maxResults,
		}).
		SetResult(&res).
		Post(serperSearchEndpoint)
	if err != nil {
		c.log.Error().Err(err).Str("query", query).Msg("failed to query Serper search API")
		return nil, fmt.Errorf("failed to query Serper search API: %w", err)
	}
	if resp.IsError() {
		c.log.Error().Int("status", resp.StatusCode()).Str("response", resp.String()).Msg("Serper search API error")
		return nil, fmt.Errorf("Serper search API error (status %d)", resp.StatusCode())
	}

	results := make([]assistant.SearchResult, 0, maxResults)
	for _, item := range res.Organic {
		if len(results) == maxResults {
			break
		}
		results = append(results, assistant.SearchResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		})
	}
	return results, nil
}

// TavilyClient queries the Tavily search API.
type TavilyClient struct {
	http   *resty.Client
	apiKey string
	log    zerolog.Logger
}

var _ assistant.Searcher = (*TavilyClient)(nil)

// NewTavilyClient builds the Tavily backend.
func NewTavilyClient(apiKey string, timeout time.Duration, log zerolog.Logger) *TavilyClient {
	return &TavilyClient{
		http:   newHTTPClient(timeout),
		apiKey: apiKey,
		log:    log.With().Str("component", "tavily-client").Logger(),
	}
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search runs one Tavily query and returns up to maxResults hits.
func (c *TavilyClient) Search(ctx context.Context, query string) ([]assistant.SearchResult, error) {
	var res tavilyResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"api_key":      c.apiKey,
			"query":        query,
			"search_depth": "basic",
			"max_results":  maxResults,
		}).
		SetResult(&res).
		Post(tavilySearchEndpoint)
	if err != nil {
		c.log.Error().Err(err).Str("query", query).Msg("failed to query Tavily search API")
		return nil, fmt.Errorf("failed to query Tavily search API: %w", err)
	}
	if resp.IsError() {
		c.log.Error().Int("status", resp.StatusCode()).Str("response", resp.String()).Msg("Tavily search API error")
		return nil, fmt.Errorf("Tavily search API error (status %d)", resp.StatusCode())
	}

	results := make([]assistant.SearchResult, 0, maxResults)
	for _, item := range res.Results {
		if len(results) == maxResults {
			break
		}
		results = append(results, assistant.SearchResult{
			Title:   item.Title,
			Snippet: item.Content,
			Link:    item.URL,
		})
	}
	return results, nil
}
