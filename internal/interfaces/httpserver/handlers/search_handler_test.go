package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deskchat-server/internal/domain/message"
	repo "deskchat-server/internal/infrastructure/repository/message"
)

func newSearchRouter(t *testing.T) (*gin.Engine, message.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := message.NewService(repo.NewInMemoryRepository(), 50, zerolog.Nop())
	handler := NewSearchHandler(svc, zerolog.Nop())

	engine := gin.New()
	engine.GET("/api/search", handler.Search)
	return engine, svc
}

func TestSearchEndpointFiltersByUsername(t *testing.T) {
	engine, svc := newSearchRouter(t)
	ctx := context.Background()

	_, err := svc.Append(ctx, "alice", "shipping the build", message.TypeText)
	require.NoError(t, err)
	_, err = svc.Append(ctx, "bob", "shipping snacks", message.TypeText)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?username=ali", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var results []message.WireMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "alice", results[0].Nickname)
}

func TestSearchEndpointAnyUsernameAddsNoPredicate(t *testing.T) {
	engine, svc := newSearchRouter(t)
	ctx := context.Background()

	_, err := svc.Append(ctx, "alice", "shipping the build", message.TypeText)
	require.NoError(t, err)
	_, err = svc.Append(ctx, "bob", "shipping snacks", message.TypeText)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?username=any&keyword=shipping", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var results []message.WireMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	assert.Len(t, results, 2)
}
