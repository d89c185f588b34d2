// Package observability provides interfaces for logging and metrics collection
// in the go-iosxe-wlc library.
//
// This package defines standard interfaces that allow users to integrate their
// own logging and metrics implementations with the WLC client.
//
// # Logger Interface
//
// The Logger interface supports structured logging with key-value pairs:
//
//	logger := myCustomLogger{} // implements observability.Logger
//	client, err := wlc.NewWithConfig(&wlc.ClientConfig{
//		Host:     "wlc1.example.net",
//		Username: username,
//		Password: password,
//		Logger:   logger,
//	})
//
// Supported log levels:
//   - Debug: Detailed diagnostic information
//   - Info: General informational messages
//   - Warn: Warning messages for potentially problematic situations
//   - Error: Error messages for failures
//
// Every message emitted by the client carries a "controller" field with the
// configured host, so logs from several client instances stay attributable.
// The password is never logged at any level.
//
// # MetricsRecorder Interface
//
// The MetricsRecorder interface tracks API client metrics:
//
//	metrics := myMetricsRecorder{} // implements observability.MetricsRecorder
//	client, err := wlc.NewWithConfig(&wlc.ClientConfig{
//		Host:     "wlc1.example.net",
//		Username: username,
//		Password: password,
//		Metrics:  metrics,
//	})
//
// Tracked metrics include:
//   - HTTP request count, status codes, and duration
//   - Retry attempts for failed requests
//   - Rate limiting events and wait times
//   - Error occurrences by type
//
// # Default Behavior
//
// If no logger or metrics recorder is provided, the client uses no-op
// implementations that discard all events. This ensures zero overhead
// when observability is not needed.
//
// # Example
//
// See examples/observability/main.go for a complete working example showing
// how to integrate custom logging (using slog) and metrics collection.
package observability
