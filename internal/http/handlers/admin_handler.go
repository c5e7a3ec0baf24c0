package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/http/middleware"
)

// AdminHandler handles HTTP requests for administrative operations
type AdminHandler struct {
	adminUseCase domain.AdminUseCase
	errors       *middleware.ErrorHandler
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUseCase domain.AdminUseCase, errors *middleware.ErrorHandler) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
		errors:       errors,
	}
}

// SetBalanceRequest represents the set-balance request body
type SetBalanceRequest struct {
	Balance *int64 `json:"balance" binding:"required" example:"1000"`
}

// WalletResponse represents a wallet after an admin change
type WalletResponse struct {
	UserID  int64 `json:"user_id" example:"123"`
	Balance int64 `json:"balance" example:"1000"`
}

// BonusResponse reports how many users received the bonus
type BonusResponse struct {
	UsersCredited int `json:"users_credited" example:"5"`
}

// BlockResponse represents the block state of a user
type BlockResponse struct {
	UserID  int64 `json:"user_id" example:"123"`
	Blocked bool  `json:"blocked" example:"true"`
}

// Stats returns aggregated roulette statistics
// @Summary Casino statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.CasinoStats
// @Failure 403 {object} domain.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUseCase.Stats(c.Request.Context())
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// SetBalance overwrites a user's balance
// @Summary Set balance
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body SetBalanceRequest true "New balance"
// @Success 200 {object} WalletResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /admin/users/{id}/balance [post]
func (h *AdminHandler) SetBalance(c *gin.Context) {
	adminID, ok := authenticatedUserID(c, h.errors)
	if !ok {
		return
	}
	userID, ok := pathID(c, h.errors, "id")
	if !ok {
		return
	}

	var req SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.Respond(c, invalidBody(err))
		return
	}

	wallet, err := h.adminUseCase.SetBalance(c.Request.Context(), adminID, userID, *req.Balance)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, WalletResponse{UserID: wallet.UserID, Balance: wallet.Balance})
}

// GrantBonus credits the configured bonus to every user
// @Summary Grant bonus to all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} BonusResponse
// @Failure 403 {object} domain.ErrorResponse
// @Router /admin/users/bonus [post]
func (h *AdminHandler) GrantBonus(c *gin.Context) {
	adminID, ok := authenticatedUserID(c, h.errors)
	if !ok {
		return
	}

	credited, err := h.adminUseCase.GrantBonus(c.Request.Context(), adminID)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, BonusResponse{UsersCredited: credited})
}

// ToggleBlock blocks or unblocks a user
// @Summary Toggle block
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} BlockResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /admin/users/{id}/toggle-block [post]
func (h *AdminHandler) ToggleBlock(c *gin.Context) {
	adminID, ok := authenticatedUserID(c, h.errors)
	if !ok {
		return
	}
	userID, ok := pathID(c, h.errors, "id")
	if !ok {
		return
	}

	user, err := h.adminUseCase.ToggleBlock(c.Request.Context(), adminID, userID)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, BlockResponse{UserID: user.ID, Blocked: user.IsBlocked})
}
