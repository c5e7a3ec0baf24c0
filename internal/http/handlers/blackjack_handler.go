package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/http/middleware"
)

// BlackjackHandler handles HTTP requests for blackjack hands
type BlackjackHandler struct {
	blackjackUseCase domain.BlackjackUseCase
	errors           *middleware.ErrorHandler
}

// NewBlackjackHandler creates a new blackjack handler
func NewBlackjackHandler(blackjackUseCase domain.BlackjackUseCase, errors *middleware.ErrorHandler) *BlackjackHandler {
	return &BlackjackHandler{
		blackjackUseCase: blackjackUseCase,
		errors:           errors,
	}
}

// DealRequest represents the deal request body
type DealRequest struct {
	Amount *int64 `json:"amount" binding:"required" example:"10"`
}

// ActiveHand returns the caller's unfinished hand
// @Summary Active hand
// @Tags blackjack
// @Produce json
// @Security BearerAuth
// @Success 200 {object} HandResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /blackjack/hand [get]
func (h *BlackjackHandler) ActiveHand(c *gin.Context) {
	h.handle(c, h.blackjackUseCase.ActiveHand)
}

// Deal starts a new hand
// @Summary Deal
// @Tags blackjack
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DealRequest true "Stake"
// @Success 201 {object} HandResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Router /blackjack/deal [post]
func (h *BlackjackHandler) Deal(c *gin.Context) {
	userID, ok := authenticatedUserID(c, h.errors)
	if !ok {
		return
	}

	var req DealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.Respond(c, invalidBody(err))
		return
	}

	hand, err := h.blackjackUseCase.Deal(c.Request.Context(), userID, *req.Amount)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, newHandResponse(hand))
}

// Hit draws a card for the player
// @Summary Hit
// @Tags blackjack
// @Produce json
// @Security BearerAuth
// @Success 200 {object} HandResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Router /blackjack/hit [post]
func (h *BlackjackHandler) Hit(c *gin.Context) {
	h.handle(c, h.blackjackUseCase.Hit)
}

// Stand ends the player's turn and settles the hand
// @Summary Stand
// @Tags blackjack
// @Produce json
// @Security BearerAuth
// @Success 200 {object} HandResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Router /blackjack/stand [post]
func (h *BlackjackHandler) Stand(c *gin.Context) {
	h.handle(c, h.blackjackUseCase.Stand)
}

// History returns the caller's latest hands
// @Summary Recent hands
// @Tags blackjack
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of hands, at most 50"
// @Success 200 {array} HandResponse
// @Router /blackjack/hands [get]
func (h *BlackjackHandler) History(c *gin.Context) {
	userID, ok := authenticatedUserID(c, h.errors)
	if !ok {
		return
	}
	limit, ok := queryLimit(c, h.errors)
	if !ok {
		return
	}
	hands, err := h.blackjackUseCase.RecentHands(c.Request.Context(), userID, limit)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	out := make([]HandResponse, 0, len(hands))
	for _, hand := range hands {
		out = append(out, newHandResponse(hand))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BlackjackHandler) handle(c *gin.Context, action func(ctx context.Context, userID int64) (*domain.BlackjackHand, error)) {
	userID, ok := authenticatedUserID(c, h.errors)
	if !ok {
		return
	}
	hand, err := action(c.Request.Context(), userID)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, newHandResponse(hand))
}
