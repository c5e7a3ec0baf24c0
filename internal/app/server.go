package app

import (
	"context"

	"github.com/saradorri/casino/internal/http"
	"github.com/saradorri/casino/internal/http/handlers"
	"github.com/saradorri/casino/internal/http/middleware"
	"github.com/saradorri/casino/internal/infrastructure/auth"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// InitHTTPServer initializes the HTTP server with all dependencies
func (a *application) InitHTTPServer(
	jwtService auth.JWTService,
	userHandler *handlers.UserHandler,
	rouletteHandler *handlers.RouletteHandler,
	blackjackHandler *handlers.BlackjackHandler,
	adminHandler *handlers.AdminHandler,
	errorHandler *middleware.ErrorHandler,
	log *logger.Logger,
) *http.Server {
	return http.NewServer(
		jwtService,
		userHandler,
		rouletteHandler,
		blackjackHandler,
		adminHandler,
		errorHandler,
		log,
		a.config.GetServerAddress(),
	)
}

// RegisterServerHooks starts the listener on fx start and drains it on stop
func (a *application) RegisterServerHooks(lc fx.Lifecycle, server *http.Server, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
