package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"deskchat-server/internal/domain/assistant"
	"deskchat-server/internal/infrastructure/metrics"
	"deskchat-server/internal/utils/apierror"
)

// AIChatHandler exposes the tool-augmented chat pipeline.
type AIChatHandler struct {
	service *assistant.Service
	log     zerolog.Logger
}

func NewAIChatHandler(service *assistant.Service, log zerolog.Logger) *AIChatHandler {
	return &AIChatHandler{
		service: service,
		log:     log.With().Str("component", "ai-chat-handler").Logger(),
	}
}

type aiChatRequest struct {
	History        []openai.ChatCompletionMessage `json:"history"`
	UseNetwork     bool                           `json:"use_network"`
	SearchProvider string                         `json:"search_provider"`
}

type aiChatResponse struct {
	Reply string `json:"reply"`
}

// Reply runs one stateless pipeline pass over the caller-owned transcript.
// Provider-classified errors keep their upstream status code.
func (h *AIChatHandler) Reply(c *gin.Context) {
	var req aiChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if len(req.History) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "history is required"})
		return
	}

	reply, err := h.service.Reply(c.Request.Context(), assistant.ReplyRequest{
		History:        req.History,
		UseNetwork:     req.UseNetwork,
		SearchProvider: assistant.ParseProvider(req.SearchProvider),
	})
	if err != nil {
		metrics.AssistantReplies.WithLabelValues("error").Inc()
		if errors.Is(err, assistant.ErrEmptyHistory) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		if apiErr, ok := apierror.From(err); ok {
			h.log.Error().Err(err).Int("status", apiErr.StatusCode).Msg("provider error")
			c.JSON(apiErr.StatusCode, errorResponse{Error: apiErr.Message})
			return
		}
		h.log.Error().Err(err).Msg("assistant reply failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "ai chat failed"})
		return
	}

	metrics.AssistantReplies.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, aiChatResponse{Reply: reply})
}
