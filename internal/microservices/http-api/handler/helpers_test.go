package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"giphyexplorer/internal/microservices/http-api/apperror"
	"giphyexplorer/internal/microservices/http-api/middleware"
	"giphyexplorer/internal/microservices/http-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setupRouter() (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return router, router.Group("/api")
}

// asUser stands in for AuthMiddleware in handler tests.
func asUser(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetCurrentUser(c, &models.User{ID: id, Username: id, Email: id + "@example.com"})
		c.Next()
	}
}

func doJSON(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) apperror.Response {
	t.Helper()
	var body apperror.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
