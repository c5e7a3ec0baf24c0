package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/http/middleware"
	"github.com/saradorri/casino/internal/infrastructure/auth"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	userUseCase domain.UserUseCase
	jwtService  auth.JWTService
	errors      *middleware.ErrorHandler
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUseCase domain.UserUseCase, jwtService auth.JWTService, errors *middleware.ErrorHandler) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		jwtService:  jwtService,
		errors:      errors,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"user1"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// LoginResponse represents the login response body
type LoginResponse struct {
	Token string   `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User  UserInfo `json:"user"`
}

// UserInfo represents user information
type UserInfo struct {
	ID       int64  `json:"id" example:"123"`
	Username string `json:"username" example:"user1"`
	Role     string `json:"role" example:"user"`
	Blocked  bool   `json:"blocked" example:"false"`
	Balance  int64  `json:"balance" example:"1000"`
}

func newUserInfo(profile *domain.UserProfile) UserInfo {
	return UserInfo{
		ID:       profile.User.ID,
		Username: profile.User.Username,
		Role:     string(profile.User.Role),
		Blocked:  profile.User.IsBlocked,
		Balance:  profile.Balance,
	}
}

// Login handles user authentication
// @Summary User login
// @Description Authenticate user, make sure a wallet exists and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.Respond(c, invalidBody(err))
		return
	}

	ctx := c.Request.Context()
	token, err := h.userUseCase.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	userID, err := h.jwtService.ExtractUserIDFromToken(token)
	if err != nil {
		h.errors.Respond(c, domain.NewInternalError("Failed to process token", err))
		return
	}

	profile, err := h.userUseCase.GetUserInfo(ctx, userID)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, User: newUserInfo(profile)})
}

// GetUserInfo handles getting user information
// @Summary Get user information
// @Description Get current user information and balance from JWT token
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserInfo
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	userID, ok := authenticatedUserID(c, h.errors)
	if !ok {
		return
	}

	profile, err := h.userUseCase.GetUserInfo(c.Request.Context(), userID)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserInfo(profile))
}

// ProfileStats returns the caller's win and loss record across both games
// @Summary Get profile statistics
// @Description Wins, losses and amounts over settled roulette bets and finished blackjack hands
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.ProfileStats
// @Failure 401 {object} domain.ErrorResponse
// @Router /users/me/stats [get]
func (h *UserHandler) ProfileStats(c *gin.Context) {
	userID, ok := authenticatedUserID(c, h.errors)
	if !ok {
		return
	}

	stats, err := h.userUseCase.ProfileStats(c.Request.Context(), userID)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
