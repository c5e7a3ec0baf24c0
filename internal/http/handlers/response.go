package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/http/middleware"
)

// RoundResponse represents a roulette round
type RoundResponse struct {
	ID           int64      `json:"id" example:"42"`
	Seq          int64      `json:"seq" example:"42"`
	Status       string     `json:"status" example:"open"`
	StartedAt    time.Time  `json:"started_at" example:"2024-01-15T10:30:00Z"`
	EndsAt       time.Time  `json:"ends_at" example:"2024-01-15T10:30:30Z"`
	ResultNumber *int       `json:"result_number,omitempty" example:"17"`
	ResultColor  *string    `json:"result_color,omitempty" example:"black"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}

// BetResponse represents a roulette bet
type BetResponse struct {
	ID       int64     `json:"id" example:"7"`
	RoundID  int64     `json:"round_id" example:"42"`
	Kind     string    `json:"kind" example:"number"`
	Value    string    `json:"value" example:"17"`
	Amount   int64     `json:"amount" example:"10"`
	IsWin    *bool     `json:"is_win,omitempty"`
	Payout   *int64    `json:"payout,omitempty"`
	PlacedAt time.Time `json:"placed_at"`
}

// HandResponse represents a blackjack hand. The dealer's hole card stays hidden while the hand is active.
type HandResponse struct {
	ID          int64      `json:"id" example:"3"`
	Status      string     `json:"status" example:"playing"`
	BetAmount   int64      `json:"bet_amount" example:"10"`
	PlayerCards []string   `json:"player_cards" example:"AS,10H"`
	PlayerValue int        `json:"player_value" example:"21"`
	DealerCards []string   `json:"dealer_cards" example:"KD"`
	DealerValue int        `json:"dealer_value" example:"10"`
	Result      *string    `json:"result,omitempty" example:"blackjack"`
	Payout      *int64     `json:"payout,omitempty" example:"25"`
	CreatedAt   time.Time  `json:"created_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

func newRoundResponse(r *domain.Round) RoundResponse {
	resp := RoundResponse{
		ID:           r.ID,
		Seq:          r.Seq,
		Status:       string(r.Status),
		StartedAt:    r.StartedAt,
		EndsAt:       r.EndsAt,
		ResultNumber: r.ResultNumber,
		ResolvedAt:   r.ResolvedAt,
	}
	if r.ResultColor != nil {
		color := string(*r.ResultColor)
		resp.ResultColor = &color
	}
	return resp
}

func newRoundResponses(rounds []*domain.Round) []RoundResponse {
	out := make([]RoundResponse, 0, len(rounds))
	for _, r := range rounds {
		out = append(out, newRoundResponse(r))
	}
	return out
}

func newBetResponse(b *domain.Bet) BetResponse {
	return BetResponse{
		ID:       b.ID,
		RoundID:  b.RoundID,
		Kind:     string(b.Kind),
		Value:    b.Value,
		Amount:   b.Amount,
		IsWin:    b.IsWin,
		Payout:   b.Payout,
		PlacedAt: b.PlacedAt,
	}
}

func newHandResponse(h *domain.BlackjackHand) HandResponse {
	dealer := h.DealerCards
	if h.IsActive() && len(dealer) > 1 {
		dealer = dealer[:1]
	}
	resp := HandResponse{
		ID:          h.ID,
		Status:      string(h.Status),
		BetAmount:   h.BetAmount,
		PlayerCards: codes(h.PlayerCards),
		PlayerValue: h.PlayerValue(),
		DealerCards: codes(dealer),
		DealerValue: dealer.Total(),
		Payout:      h.Payout,
		CreatedAt:   h.CreatedAt,
		FinishedAt:  h.FinishedAt,
	}
	if h.Result != nil {
		result := string(*h.Result)
		resp.Result = &result
	}
	return resp
}

func codes(cards domain.Cards) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// authenticatedUserID extracts the user ID set by the JWT middleware
func authenticatedUserID(c *gin.Context, errs *middleware.ErrorHandler) (int64, bool) {
	if v, exists := c.Get(middleware.ContextUserID); exists {
		if id, ok := v.(int64); ok {
			return id, true
		}
	}
	errs.Respond(c, domain.NewUnauthorizedError("User not authenticated"))
	return 0, false
}

// optionalUserID returns the caller's user ID when the request carried a valid token
func optionalUserID(c *gin.Context) *int64 {
	if v, exists := c.Get(middleware.ContextUserID); exists {
		if id, ok := v.(int64); ok {
			return &id
		}
	}
	return nil
}

// pathID parses a positive int64 path parameter
func pathID(c *gin.Context, errs *middleware.ErrorHandler, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errs.Respond(c, domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid "+name, http.StatusBadRequest, err))
		return 0, false
	}
	return id, true
}

// queryLimit parses the optional limit query parameter
func queryLimit(c *gin.Context, errs *middleware.ErrorHandler) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		errs.Respond(c, domain.NewAppError(domain.ErrCodeInvalidRange, "Invalid limit", http.StatusBadRequest, err))
		return 0, false
	}
	return limit, true
}

// invalidBody maps a binding failure to an error naming the first offending field
func invalidBody(err error) *domain.AppError {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return domain.NewAppError(domain.ErrCodeInvalidFormat, "Invalid request body", http.StatusBadRequest, err)
	}

	field := fields[0]
	if field.Tag() == "required" {
		return domain.NewValidationError(domain.ErrCodeRequiredField, strings.ToLower(field.Field()), "is required", err)
	}
	return domain.NewValidationError(domain.ErrCodeInvalidFormat, strings.ToLower(field.Field()), "fails "+field.Tag(), err)
}
