package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rehber-app/anket-client/internal/store"
	"github.com/rehber-app/anket-client/internal/utils"
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
	config LogConfig
}

type LogConfig struct {
	Service     string
	Component   string
	EnableDebug bool
}

func NewServiceLogger(logger *slog.Logger, config LogConfig) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", config.Service, "component", config.Component),
		config: config,
	}
}

// ===== OPERATION LOGGING =====

func operationStatus(err error) (string, slog.Level) {
	switch {
	case err == nil:
		return "success", slog.LevelInfo
	case IsMissingAnswers(err) || IsValidation(err):
		return "validation_error", slog.LevelWarn
	case IsNotFound(err):
		return "not_found", slog.LevelInfo
	case IsUpstream(err):
		return "rejected", slog.LevelError
	}
	return "error", slog.LevelError
}

func (l *ServiceLogger) LogOperation(ctx context.Context, operation string, resourceID string, resourceType string, duration time.Duration, err error) {
	status, level := operationStatus(err)

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("resource_id", resourceID),
		slog.String("resource_type", resourceType),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		if validationErr, ok := err.(ValidationErrors); ok {
			attrs = append(attrs, slog.Int("validation_errors_count", len(validationErr)))
		} else if missingErr, ok := err.(*MissingAnswersError); ok {
			attrs = append(attrs, slog.Any("missing", missingErr.Indices))
		}
	}

	if requestID, ok := ctx.Value(utils.RequestIDKey).(string); ok {
		attrs = append(attrs, slog.String("request_id", requestID))
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

// Observe adapts LogOperation to a store observer; the op's slice is the
// resource type.
func (l *ServiceLogger) Observe(ctx context.Context, op store.Op, key string, duration time.Duration, err error) {
	l.LogOperation(ctx, string(op), key, op.Slice(), duration, err)
}

func (l *ServiceLogger) LogValidationError(ctx context.Context, operation string, validationErrors ValidationErrors) {
	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.Int("error_count", len(validationErrors)),
	}

	for i, err := range validationErrors {
		if i < 5 {
			attrs = append(attrs, slog.Group(fmt.Sprintf("error_%d", i+1),
				slog.String("field", err.Field),
				slog.String("message", err.Message),
				slog.Any("value", err.Value),
			))
		}
	}

	l.logger.LogAttrs(ctx, slog.LevelWarn, "Validation failed", attrs...)
}

func (l *ServiceLogger) Debug(ctx context.Context, msg string, args ...any) {
	if l.config.EnableDebug {
		l.logger.DebugContext(ctx, msg, args...)
	}
}

// ===== ERROR RECOVERY LOGGING =====

func (l *ServiceLogger) LogRecovery(ctx context.Context, operation string, recovered interface{}, stack []byte) {
	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.Any("panic_value", recovered),
		slog.String("stack_trace", string(stack)),
	}

	l.logger.LogAttrs(ctx, slog.LevelError, "Panic recovered", attrs...)
}
