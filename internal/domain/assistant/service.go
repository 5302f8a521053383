// Package assistant implements the tool-augmented chat pipeline.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

// ErrEmptyHistory is returned when a reply is requested without a transcript.
var ErrEmptyHistory = errors.New("chat history is required")

// Completer issues one non-streaming chat completion.
type Completer interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error)
}

// SearchResult is one web search hit handed back to the model.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// Searcher runs a web search for the web_search tool.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// Provider selects the web search backend.
type Provider string

const (
	// ProviderGoogle routes web_search through Serper's Google results.
	ProviderGoogle Provider = "google"
	// ProviderTavily routes web_search through the Tavily API.
	ProviderTavily Provider = "tavily"
)

// ParseProvider maps client input onto a known provider, defaulting to
// google.
func ParseProvider(value string) Provider {
	if Provider(strings.ToLower(strings.TrimSpace(value))) == ProviderTavily {
		return ProviderTavily
	}
	return ProviderGoogle
}

// ReplyRequest carries one caller-owned transcript through the pipeline.
type ReplyRequest struct {
	History        []openai.ChatCompletionMessage
	UseNetwork     bool
	SearchProvider Provider
}

// Service runs the two-phase completion flow: one completion, optional tool
// execution, and at most one follow-up completion.
type Service struct {
	completer Completer
	searchers map[Provider]Searcher
	model     string
	now       func() time.Time
	log       zerolog.Logger
}

// NewService wires the assistant pipeline.
func NewService(completer Completer, searchers map[Provider]Searcher, model string, log zerolog.Logger) *Service {
	return &Service{
		completer: completer,
		searchers: searchers,
		model:     model,
		now:       time.Now,
		log:       log.With().Str("component", "assistant-service").Logger(),
	}
}

// Reply produces the assistant's final text for the transcript. Tools are
// advertised only when the request enables network access; when the first
// completion requests tool calls, every call is executed and exactly one
// follow-up completion produces the returned text.
func (s *Service) Reply(ctx context.Context, req ReplyRequest) (string, error) {
	if len(req.History) == 0 {
		return "", ErrEmptyHistory
	}

	first := openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: req.History,
	}
	if req.UseNetwork {
		first.Tools = toolDefinitions()
		first.ToolChoice = "auto"
	}

	resp, err := s.completer.CreateChatCompletion(ctx, first)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	reply := resp.Choices[0].Message
	if len(reply.ToolCalls) == 0 {
		return reply.Content, nil
	}

	messages := append(append([]openai.ChatCompletionMessage(nil), req.History...), reply)
	for _, call := range reply.ToolCalls {
		result := s.executeTool(ctx, call, req.SearchProvider)
		messages = append(messages, openai.ChatCompletionMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    result,
			Name:       call.Function.Name,
			ToolCallID: call.ID,
		})
	}

	// Follow-up carries no tool definitions: any tool call the model emits
	// here is returned as plain content, never executed.
	followUp, err := s.completer.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(followUp.Choices) == 0 {
		return "", errors.New("follow-up completion returned no choices")
	}
	return followUp.Choices[0].Message.Content, nil
}

// executeTool returns the tool result as a JSON or plain-text string. Tool
// failures are reported to the model rather than aborting the pipeline.
func (s *Service) executeTool(ctx context.Context, call openai.ToolCall, provider Provider) string {
	switch call.Function.Name {
	case webSearchToolName:
		return s.runWebSearch(ctx, call.Function.Arguments, provider)
	case currentTimeToolName:
		return formatCurrentTime(s.now())
	default:
		s.log.Warn().Str("tool", call.Function.Name).Msg("model requested unknown tool")
		return toolError(fmt.Errorf("unknown tool %q", call.Function.Name))
	}
}

func (s *Service) runWebSearch(ctx context.Context, arguments string, provider Provider) string {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return toolError(fmt.Errorf("invalid web_search arguments: %w", err))
	}

	query := sanitizeQuery(args.Query)
	if query == "" {
		return toolError(errors.New("web_search query is empty"))
	}

	searcher, ok := s.searchers[provider]
	if !ok {
		searcher = s.searchers[ProviderGoogle]
	}

	results, err := searcher.Search(ctx, query)
	if err != nil {
		s.log.Error().Err(err).Str("provider", string(provider)).Str("query", query).Msg("web search failed")
		return toolError(err)
	}

	encoded, err := json.Marshal(results)
	if err != nil {
		return toolError(err)
	}
	return string(encoded)
}

func toolError(err error) string {
	encoded, marshalErr := json.Marshal(map[string]string{"error": err.Error()})
	if marshalErr != nil {
		return `{"error":"tool execution failed"}`
	}
	return string(encoded)
}
