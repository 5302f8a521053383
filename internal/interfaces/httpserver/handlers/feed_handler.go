package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"deskchat-server/internal/infrastructure/feed"
)

// FeedHandler proxies RSS/Atom feeds for the browser client.
type FeedHandler struct {
	client *feed.Client
	log    zerolog.Logger
}

func NewFeedHandler(client *feed.Client, log zerolog.Logger) *FeedHandler {
	return &FeedHandler{
		client: client,
		log:    log.With().Str("component", "feed-handler").Logger(),
	}
}

// Parse fetches the feed named by the url query parameter and returns it
// in normalized JSON. Upstream failures map to 504 (timeout), 502 (fetch)
// or 500 (parse).
func (h *FeedHandler) Parse(c *gin.Context) {
	url := strings.TrimSpace(c.Query("url"))
	if url == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "url query parameter is required"})
		return
	}

	result, err := h.client.Fetch(c.Request.Context(), url)
	if err != nil {
		switch {
		case errors.Is(err, feed.ErrTimeout):
			c.JSON(http.StatusGatewayTimeout, errorResponse{Error: "feed fetch timed out"})
		case errors.Is(err, feed.ErrFetch):
			c.JSON(http.StatusBadGateway, errorResponse{Error: "feed could not be fetched"})
		default:
			c.JSON(http.StatusInternalServerError, errorResponse{Error: "feed could not be parsed"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
