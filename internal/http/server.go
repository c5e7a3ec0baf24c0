package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/saradorri/casino/internal/http/handlers"
	"github.com/saradorri/casino/internal/http/middleware"
	"github.com/saradorri/casino/internal/infrastructure/auth"
	"github.com/saradorri/casino/internal/infrastructure/logger"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	router           *gin.Engine
	httpServer       *http.Server
	jwtService       auth.JWTService
	userHandler      *handlers.UserHandler
	rouletteHandler  *handlers.RouletteHandler
	blackjackHandler *handlers.BlackjackHandler
	adminHandler     *handlers.AdminHandler
	errorHandler     *middleware.ErrorHandler
	logger           *logger.Logger
}

// NewServer creates a new HTTP server
func NewServer(
	jwtService auth.JWTService,
	userHandler *handlers.UserHandler,
	rouletteHandler *handlers.RouletteHandler,
	blackjackHandler *handlers.BlackjackHandler,
	adminHandler *handlers.AdminHandler,
	errorHandler *middleware.ErrorHandler,
	log *logger.Logger,
	addr string,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(errorHandler.RequestIDMiddleware())
	router.Use(errorHandler.ErrorHandlerMiddleware())
	router.Use(errorHandler.TimeoutMiddleware(30 * time.Second))
	router.Use(middleware.LoggerMiddleware(log))

	server := &Server{
		router:           router,
		jwtService:       jwtService,
		userHandler:      userHandler,
		rouletteHandler:  rouletteHandler,
		blackjackHandler: blackjackHandler,
		adminHandler:     adminHandler,
		errorHandler:     errorHandler,
		logger:           log,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.router.Group("/api/v1")
	{
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/login", s.userHandler.Login)
		}

		public := v1.Group("/roulette")
		public.Use(middleware.OptionalJWTMiddleware(s.jwtService))
		{
			public.GET("/state", s.rouletteHandler.State)
			public.GET("/rounds/current", s.rouletteHandler.CurrentRound)
			public.GET("/rounds/:id", s.rouletteHandler.GetRound)
			public.GET("/history", s.rouletteHandler.History)
		}

		protected := v1.Group("/")
		protected.Use(middleware.JWTMiddleware(s.jwtService))
		{
			userRoutes := protected.Group("/users")
			{
				userRoutes.GET("/me", s.userHandler.GetUserInfo)
				userRoutes.GET("/me/stats", s.userHandler.ProfileStats)
			}

			rouletteRoutes := protected.Group("/roulette")
			{
				rouletteRoutes.POST("/bets", s.rouletteHandler.PlaceBet)
				rouletteRoutes.GET("/bets/current", s.rouletteHandler.CurrentBets)
			}

			blackjackRoutes := protected.Group("/blackjack")
			{
				blackjackRoutes.GET("/hand", s.blackjackHandler.ActiveHand)
				blackjackRoutes.GET("/hands", s.blackjackHandler.History)
				blackjackRoutes.POST("/deal", s.blackjackHandler.Deal)
				blackjackRoutes.POST("/hit", s.blackjackHandler.Hit)
				blackjackRoutes.POST("/stand", s.blackjackHandler.Stand)
			}

			adminRoutes := protected.Group("/admin")
			adminRoutes.Use(middleware.AdminOnly())
			{
				adminRoutes.GET("/stats", s.adminHandler.Stats)
				adminRoutes.POST("/users/:id/balance", s.adminHandler.SetBalance)
				adminRoutes.POST("/users/bonus", s.adminHandler.GrantBonus)
				adminRoutes.POST("/users/:id/toggle-block", s.adminHandler.ToggleBlock)
			}
		}
	}
}

// Handler exposes the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
