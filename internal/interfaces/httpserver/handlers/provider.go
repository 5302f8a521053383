package handlers

import (
	"github.com/rs/zerolog"

	"deskchat-server/internal/domain/assistant"
	"deskchat-server/internal/domain/media"
	"deskchat-server/internal/domain/message"
	"deskchat-server/internal/infrastructure/feed"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Upload *UploadHandler
	Search *SearchHandler
	AIChat *AIChatHandler
	Feed   *FeedHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	mediaService *media.Service,
	messageService message.Service,
	assistantService *assistant.Service,
	feedClient *feed.Client,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Upload: NewUploadHandler(mediaService, log),
		Search: NewSearchHandler(messageService, log),
		AIChat: NewAIChatHandler(assistantService, log),
		Feed:   NewFeedHandler(feedClient, log),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}
