package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"deskchat-server/internal/domain/message"
)

// SearchHandler exposes message history search over REST.
type SearchHandler struct {
	service message.Service
	log     zerolog.Logger
}

func NewSearchHandler(service message.Service, log zerolog.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		log:     log.With().Str("component", "search-handler").Logger(),
	}
}

// Search applies the same normalization as the socket search event:
// absent or "any" parameters add no predicate.
func (h *SearchHandler) Search(c *gin.Context) {
	filter := message.NormalizeFilter(
		c.Query("username"),
		c.Query("keyword"),
		c.Query("year"),
		c.Query("month"),
		c.Query("day"),
	)

	results, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("search messages")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "search failed"})
		return
	}
	c.JSON(http.StatusOK, results)
}
