package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rehber-app/anket-client/internal/client"
	"github.com/rehber-app/anket-client/internal/services"
	"github.com/rehber-app/anket-client/internal/store"
	"github.com/rehber-app/anket-client/internal/utils"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// DataResponse carries store-backed data. Error is set when the latest
// refresh failed; Data then holds the last good value, if any.
type DataResponse struct {
	Data  interface{} `json:"data"`
	Error string      `json:"error,omitempty"`
}

const (
	codeMissingAnswers = "MISSING_ANSWERS"
	codeUpstream       = "UPSTREAM_ERROR"
	codeValidation     = "VALIDATION_ERROR"
	codeNotFound       = "NOT_FOUND"

	msgRequestFailed = "İstek tamamlanamadı"
)

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// requestLogger prefers the logger ContextLogger put on the request.
func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	if _, ok := c.Get("logger"); ok {
		return utils.GetLoggerFromContext(c)
	}
	return h.logger.With(
		"request_id", c.GetString(utils.RequestIDKey),
		"session_id", c.GetString(utils.SessionKey),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"remote_addr", c.ClientIP(),
		"timestamp", time.Now().Format(time.RFC3339),
	}
	fields = append(fields, additionalFields...)
	h.requestLogger(c).Info(message, fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	h.requestLogger(c).LogError(err, message, additionalFields...)
}

func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	h.requestLogger(c).Warn(message, additionalFields...)
}

func (h *BaseHandler) LogInfo(c *gin.Context, message string, additionalFields ...interface{}) {
	h.requestLogger(c).Info(message, additionalFields...)
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Message: message,
	}

	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if err != nil && statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode)
	}

	c.JSON(statusCode, errorResp)
}

// RespondWithSuccess sends a consistent success response and logs it
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}, additionalFields ...interface{}) {
	fields := []interface{}{"status_code", statusCode}
	fields = append(fields, additionalFields...)
	h.LogInfo(c, message, fields...)

	c.JSON(statusCode, SuccessResponse{
		Message: message,
		Data:    data,
	})
}

// handleServiceError maps service and client errors onto HTTP statuses.
// fallback is the Turkish message used when the backend sent none.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error, fallback string) {
	var missingErr *services.MissingAnswersError
	if errors.As(err, &missingErr) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: missingErr.UserMessage(),
			Details: missingErr,
			Code:    codeMissingAnswers,
		})
		return
	}

	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
			Code:    codeValidation,
		})
		return
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
		c.JSON(apiErr.StatusCode, ErrorResponse{
			Message: client.UserMessage(err, fallback),
			Code:    codeUpstream,
		})
		return
	}

	switch {
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: client.UserMessage(err, orDefault(fallback, "Kayıt bulunamadı")),
			Code:    codeNotFound,
		})
	case services.IsValidation(err), errors.Is(err, services.ErrSurveyHasNoItems):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: err.Error(),
			Code:    codeValidation,
		})
	case services.IsUpstream(err):
		h.LogError(c, err, "Backend request failed")
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Message: client.UserMessage(err, orDefault(fallback, msgRequestFailed)),
			Code:    codeUpstream,
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}

// respondLoaded writes store-backed data. A failed refresh with stale data
// still answers 200 with the error message beside the data; with nothing
// stored the error is mapped like any other.
func respondLoaded[T any](h *BaseHandler, c *gin.Context, loaded services.Loaded[T], err error, op store.Op, key string) {
	if err == nil {
		c.JSON(http.StatusOK, DataResponse{Data: loaded.Value})
		return
	}

	msg := failureMessage(c, err, op, key)
	if !loaded.Present {
		h.handleServiceError(c, err, msg)
		return
	}

	h.LogWarn(c, "Serving stale data", "op", string(op), "key", key, "error", err.Error())
	c.JSON(http.StatusOK, DataResponse{Data: loaded.Value, Error: msg})
}

// failureMessage is the localized message the store recorded for the failed
// request, or a generic one when the failure never reached the store.
func failureMessage(c *gin.Context, err error, op store.Op, key string) string {
	if st := sessionStore(c); st != nil {
		if msg := st.State().Request(op, key).Error; msg != "" {
			return msg
		}
	}
	return client.UserMessage(err, msgRequestFailed)
}

// sessionStore returns the store SessionMiddleware attached to the request.
func sessionStore(c *gin.Context) *store.Store {
	if v, ok := c.Get(storeKey); ok {
		if st, ok := v.(*store.Store); ok {
			return st
		}
	}
	return nil
}

func parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	valueStr := c.Query(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
