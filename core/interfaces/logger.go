package interfaces

// Logger defines the interface for logging throughout the application.
// The logrus adapter in infrastructure/logger is the production implementation.
//
// Example usage:
//
//	logger.Info("Feed cache miss", map[string]interface{}{
//		"key": "feed:https://example.com/blog",
//	})
//
//	logger.Error("Extraction failed", map[string]interface{}{
//		"url":   "https://example.com/blog",
//		"error": err.Error(),
//	})
type Logger interface {
	// Debug logs a debug level message with optional structured fields.
	Debug(msg string, fields map[string]interface{})

	// Info logs an info level message with optional structured fields.
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning level message with optional structured fields.
	// Warning messages indicate potential issues that don't prevent operation.
	Warn(msg string, fields map[string]interface{})

	// Error logs an error level message with optional structured fields.
	Error(msg string, fields map[string]interface{})
}
