package service

import (
	"context"
	"log"

	"github.com/blockpad-io/blockpad-backend/internal/api/http/middleware"
)

// Logger provides request-scoped logging for session operations.
type Logger struct {
	requestID string
}

// NewLogger creates a logger carrying the request id from context, "internal"
// when the call did not come through the HTTP layer (auto-save ticks).
func NewLogger(ctx context.Context) *Logger {
	requestID := middleware.GetRequestID(ctx)
	if requestID == "" {
		requestID = "internal"
	}
	return &Logger{requestID: requestID}
}

func (l *Logger) LogError(operation string, err error) {
	log.Printf("[error] request_id=%s operation=%s error=%v", l.requestID, operation, err)
}

func (l *Logger) LogErrorf(operation string, format string, args ...interface{}) {
	log.Printf("[error] request_id=%s operation=%s "+format, append([]interface{}{l.requestID, operation}, args...)...)
}

func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	log.Printf("[info] request_id=%s operation=%s "+format, append([]interface{}{l.requestID, operation}, args...)...)
}
