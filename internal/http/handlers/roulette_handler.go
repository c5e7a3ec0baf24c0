package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/http/middleware"
)

// RouletteHandler handles HTTP requests for the shared roulette table
type RouletteHandler struct {
	rouletteUseCase domain.RouletteUseCase
	errors          *middleware.ErrorHandler
}

// NewRouletteHandler creates a new roulette handler
func NewRouletteHandler(rouletteUseCase domain.RouletteUseCase, errors *middleware.ErrorHandler) *RouletteHandler {
	return &RouletteHandler{
		rouletteUseCase: rouletteUseCase,
		errors:          errors,
	}
}

// PlaceBetRequest represents the bet request body
type PlaceBetRequest struct {
	Kind   string `json:"kind" binding:"required" example:"number"`
	Value  string `json:"value" binding:"required" example:"17"`
	Amount *int64 `json:"amount" binding:"required" example:"10"`
}

// StateResponse is the polling snapshot of the roulette table
type StateResponse struct {
	ServerTime    time.Time       `json:"server_time"`
	Round         RoundResponse   `json:"round"`
	AcceptingBets bool            `json:"accepting_bets" example:"true"`
	SecondsLeft   int64           `json:"seconds_left" example:"12"`
	History       []RoundResponse `json:"history"`
	Balance       *int64          `json:"balance,omitempty" example:"1000"`
}

// State returns the table snapshot
// @Summary Roulette state
// @Description Advance the round lifecycle and return server time, current round, recent results and, for authenticated callers, the balance
// @Tags roulette
// @Produce json
// @Success 200 {object} StateResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /roulette/state [get]
func (h *RouletteHandler) State(c *gin.Context) {
	state, err := h.rouletteUseCase.State(c.Request.Context(), optionalUserID(c))
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	resp := StateResponse{
		ServerTime:    state.ServerTime,
		Round:         newRoundResponse(state.Round),
		AcceptingBets: state.Round.AcceptsBets(state.ServerTime),
		History:       newRoundResponses(state.History),
		Balance:       state.Balance,
	}
	if left := state.Round.EndsAt.Sub(state.ServerTime); resp.AcceptingBets && left > 0 {
		resp.SecondsLeft = int64(left.Round(time.Second) / time.Second)
	}
	c.JSON(http.StatusOK, resp)
}

// CurrentRound returns the current round
// @Summary Current round
// @Tags roulette
// @Produce json
// @Success 200 {object} RoundResponse
// @Router /roulette/rounds/current [get]
func (h *RouletteHandler) CurrentRound(c *gin.Context) {
	round, err := h.rouletteUseCase.SyncAndGetCurrentRound(c.Request.Context())
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoundResponse(round))
}

// GetRound returns a round by ID
// @Summary Round by ID
// @Tags roulette
// @Produce json
// @Param id path int true "Round ID"
// @Success 200 {object} RoundResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /roulette/rounds/{id} [get]
func (h *RouletteHandler) GetRound(c *gin.Context) {
	id, ok := pathID(c, h.errors, "id")
	if !ok {
		return
	}
	round, err := h.rouletteUseCase.GetRound(c.Request.Context(), id)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoundResponse(round))
}

// History returns the latest finished rounds
// @Summary Recent results
// @Tags roulette
// @Produce json
// @Param limit query int false "Number of rounds, at most 100"
// @Success 200 {array} RoundResponse
// @Router /roulette/history [get]
func (h *RouletteHandler) History(c *gin.Context) {
	limit, ok := queryLimit(c, h.errors)
	if !ok {
		return
	}
	rounds, err := h.rouletteUseCase.RecentResults(c.Request.Context(), limit)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoundResponses(rounds))
}

// PlaceBet places a bet on the current round
// @Summary Place bet
// @Description Place a number, color or parity bet on the current round
// @Tags roulette
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PlaceBetRequest true "Bet"
// @Success 201 {object} BetResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Failure 429 {object} domain.ErrorResponse
// @Router /roulette/bets [post]
func (h *RouletteHandler) PlaceBet(c *gin.Context) {
	userID, ok := authenticatedUserID(c, h.errors)
	if !ok {
		return
	}

	var req PlaceBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.Respond(c, invalidBody(err))
		return
	}

	bet, err := h.rouletteUseCase.PlaceBet(c.Request.Context(), userID, domain.BetKind(req.Kind), req.Value, *req.Amount)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, newBetResponse(bet))
}

// CurrentBets returns the caller's bets in the current round
// @Summary My bets in the current round
// @Tags roulette
// @Produce json
// @Security BearerAuth
// @Success 200 {array} BetResponse
// @Router /roulette/bets/current [get]
func (h *RouletteHandler) CurrentBets(c *gin.Context) {
	userID, ok := authenticatedUserID(c, h.errors)
	if !ok {
		return
	}
	bets, err := h.rouletteUseCase.CurrentBets(c.Request.Context(), userID)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	out := make([]BetResponse, 0, len(bets))
	for _, b := range bets {
		out = append(out, newBetResponse(b))
	}
	c.JSON(http.StatusOK, out)
}
