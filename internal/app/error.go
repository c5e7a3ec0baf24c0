package app

import (
	"github.com/saradorri/casino/internal/http/middleware"
	"github.com/saradorri/casino/internal/infrastructure/logger"
)

func (a *application) InitErrorHandler(log *logger.Logger) *middleware.ErrorHandler {
	return middleware.NewErrorHandler(log)
}
