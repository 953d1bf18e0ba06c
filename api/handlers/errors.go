// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"github.com/danielgtaylor/huma/v2"

	"listfeeds-api/core/errors"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsNoURLProvided(err) || errors.IsExtraction(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsLockTimeout(err) {
		return huma.Error503ServiceUnavailable("Feed is being generated, try again shortly")
	}

	return huma.Error500InternalServerError("Internal server error")
}
