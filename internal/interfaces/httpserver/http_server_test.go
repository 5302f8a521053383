package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func performReadyz(check ReadinessCheck) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/readyz", readyzHandler(check))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	return rec
}

func TestReadyzReportsReadyWhenCheckPasses(t *testing.T) {
	rec := performReadyz(func(context.Context) error { return nil })
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ready")
}

func TestReadyzReportsUnavailableWhenCheckFails(t *testing.T) {
	rec := performReadyz(func(context.Context) error { return errors.New("bucket unreachable") })
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
