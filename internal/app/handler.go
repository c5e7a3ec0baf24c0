package app

import (
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/http/handlers"
	"github.com/saradorri/casino/internal/http/middleware"
	"github.com/saradorri/casino/internal/infrastructure/auth"
)

func (a *application) InitUserHandler(uc domain.UserUseCase, jwt auth.JWTService, errors *middleware.ErrorHandler) *handlers.UserHandler {
	return handlers.NewUserHandler(uc, jwt, errors)
}

func (a *application) InitRouletteHandler(uc domain.RouletteUseCase, errors *middleware.ErrorHandler) *handlers.RouletteHandler {
	return handlers.NewRouletteHandler(uc, errors)
}

func (a *application) InitBlackjackHandler(uc domain.BlackjackUseCase, errors *middleware.ErrorHandler) *handlers.BlackjackHandler {
	return handlers.NewBlackjackHandler(uc, errors)
}

func (a *application) InitAdminHandler(uc domain.AdminUseCase, errors *middleware.ErrorHandler) *handlers.AdminHandler {
	return handlers.NewAdminHandler(uc, errors)
}
