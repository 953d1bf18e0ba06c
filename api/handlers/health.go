// ABOUTME: Health check handler for the Huma API
// ABOUTME: Reports liveness and which cache backend the process settled on

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"listfeeds-api/api/dto/responses"
)

// HealthHandler serves GET /health
type HealthHandler struct {
	backend string
}

// NewHealthHandler creates a health handler for the named backend
func NewHealthHandler(backend string) *HealthHandler {
	return &HealthHandler{backend: backend}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"System"},
	}, h.GetHealth)
}

// HealthOutput defines the output for the health operation
type HealthOutput struct {
	Body responses.HealthResponse
}

// GetHealth handles GET /health
func (h *HealthHandler) GetHealth(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	return &HealthOutput{
		Body: responses.HealthResponse{Status: "ok", CacheBackend: h.backend},
	}, nil
}
