package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ContextRequestID is the gin context key holding the request ID
const ContextRequestID = "request_id"

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger *logger.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *logger.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// ErrorHandlerMiddleware provides centralized panic recovery for all requests
func (h *ErrorHandler) ErrorHandlerMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		h.handlePanic(c, recovered)
	})
}

// Respond writes err as an ErrorResponse using its HTTP status. Errors that are
// not AppErrors become internal errors.
func (h *ErrorHandler) Respond(c *gin.Context, err error) {
	appErr, ok := domain.IsAppError(err)
	if !ok {
		appErr = domain.NewInternalError("", err)
	}

	resp := *appErr
	resp.RequestID = getRequestID(c)
	resp.UserID = getUserID(c)
	resp.Path = c.Request.URL.Path
	resp.Method = c.Request.Method

	status := resp.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		h.logger.WithContext(c.Request.Context()).Error("Request failed",
			zap.String("code", resp.Code),
			zap.String("path", resp.Path),
			zap.Error(err))
	}

	c.AbortWithStatusJSON(status, domain.NewErrorResponse(&resp))
}

// handlePanic handles panic recovery
func (h *ErrorHandler) handlePanic(c *gin.Context, recovered interface{}) {
	requestID := getRequestID(c)
	userID := getUserID(c)

	h.logger.Error("PANIC recovered",
		zap.String("X-TRACE-ID", requestID),
		zap.String("user_id", userID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Any("error", recovered),
		zap.String("stack", string(debug.Stack())))

	err := domain.NewInternalError("Internal server error", fmt.Errorf("panic: %v", recovered))
	err.RequestID = requestID
	err.UserID = userID
	err.Path = c.Request.URL.Path
	err.Method = c.Request.Method

	c.AbortWithStatusJSON(http.StatusInternalServerError, domain.NewErrorResponse(err))
}

// RequestIDMiddleware adds a unique request ID to each request
func (h *ErrorHandler) RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = generateRequestID()
		}
		c.Set(ContextRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID))
		c.Next()
	}
}

// TimeoutMiddleware bounds the request context so blocking use case calls give up after timeout
func (h *ErrorHandler) TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			h.logger.WithContext(ctx).Warn("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			h.Respond(c, domain.NewAppError("TIMEOUT", "Request timeout", http.StatusRequestTimeout, ctx.Err()))
		}
	}
}

func getRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(ContextRequestID); exists {
		if s, ok := requestID.(string); ok {
			return s
		}
	}
	return generateRequestID()
}

func getUserID(c *gin.Context) string {
	if userID, exists := c.Get(ContextUserID); exists {
		if id, ok := userID.(int64); ok {
			return strconv.FormatInt(id, 10)
		}
	}
	return ""
}

// generateRequestID generates a unique request ID
func generateRequestID() string {
	return uuid.NewString()
}
