package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"

	"listfeeds-api/api/middleware"
	"listfeeds-api/infrastructure/cache/memory"
)

type pingOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

func registerPing(api huma.API, path string) {
	huma.Register(api, huma.Operation{
		OperationID: "ping" + path,
		Method:      http.MethodGet,
		Path:        path,
	}, func(ctx context.Context, input *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		out.Body.Message = "pong"
		return out, nil
	})
}

func TestNewAPIWithMiddleware_Info(t *testing.T) {
	api, router := NewAPIWithMiddleware(APIConfig{})

	assert.NotNil(t, router)
	assert.Equal(t, "List Feeds API", api.OpenAPI().Info.Title)
	assert.Equal(t, "1.0.0", api.OpenAPI().Info.Version)
}

func TestNewAPIWithMiddleware_ServesOpenAPI(t *testing.T) {
	_, router := NewAPIWithMiddleware(APIConfig{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewAPIWithMiddleware_CORS(t *testing.T) {
	api, router := NewAPIWithMiddleware(APIConfig{})
	registerPing(api, "/rss")

	req := httptest.NewRequest(http.MethodGet, "/rss", nil)
	req.Header.Set("Origin", "https://reader.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewAPIWithMiddleware_LimitsOnlyFeedPaths(t *testing.T) {
	limiter := memory.NewRateLimiter()
	defer limiter.Close()

	api, router := NewAPIWithMiddleware(APIConfig{
		Logger:         &nopLogger{},
		RateLimiter:    limiter,
		RateLimitRules: []middleware.Rule{middleware.PerIP(1, time.Minute)},
	})
	registerPing(api, "/rss")
	registerPing(api, "/health")

	get := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, get("/rss"))
	assert.Equal(t, http.StatusTooManyRequests, get("/rss"))
	assert.Equal(t, http.StatusOK, get("/health"))
	assert.Equal(t, http.StatusOK, get("/health"))
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
