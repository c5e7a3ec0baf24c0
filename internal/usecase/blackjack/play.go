package blackjack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deal debits the stake and deals a new hand from a fresh shoe. The hand is
// left playing even on a natural; the player still has to stand.
func (uc *UseCase) Deal(ctx context.Context, userID int64, amount int64) (*domain.BlackjackHand, error) {
	hand, err := uc.inUserTx(ctx, userID, func(tx *gorm.DB) (*domain.BlackjackHand, error) {
		return uc.deal(ctx, tx, userID, amount)
	})
	if err != nil {
		uc.logger.WithContext(ctx).Info("Deal rejected",
			zap.Int64("userID", userID),
			zap.Int64("amount", amount),
			zap.Error(err))
		return nil, err
	}
	return hand, nil
}

// Hit draws one card for the player. A bust finishes the hand and 21 stands.
func (uc *UseCase) Hit(ctx context.Context, userID int64) (*domain.BlackjackHand, error) {
	hand, err := uc.inUserTx(ctx, userID, func(tx *gorm.DB) (*domain.BlackjackHand, error) {
		hand, err := uc.playingHand(ctx, tx, userID)
		if err != nil {
			return nil, err
		}
		handRepo := uc.handRepo.WithTransaction(tx)
		now := uc.clock.Now()

		hand.PlayerCards = append(hand.PlayerCards, uc.draw(hand))

		switch value := hand.PlayerValue(); {
		case value > domain.BlackjackValue:
			hand.Finish(domain.HandResultLose, 0, now)
			if err := save(ctx, handRepo, hand, domain.HandStatusPlaying); err != nil {
				return nil, err
			}
			return hand, uc.settle(ctx, tx, hand)
		case value == domain.BlackjackValue:
			return hand, uc.stand(ctx, tx, hand, now)
		default:
			return hand, save(ctx, handRepo, hand, domain.HandStatusPlaying)
		}
	})
	if err != nil {
		return nil, err
	}
	uc.finished(ctx, hand)
	return hand, nil
}

// Stand ends the player's turn, plays the dealer out and settles the hand
func (uc *UseCase) Stand(ctx context.Context, userID int64) (*domain.BlackjackHand, error) {
	hand, err := uc.inUserTx(ctx, userID, func(tx *gorm.DB) (*domain.BlackjackHand, error) {
		hand, err := uc.playingHand(ctx, tx, userID)
		if err != nil {
			return nil, err
		}
		return hand, uc.stand(ctx, tx, hand, uc.clock.Now())
	})
	if err != nil {
		return nil, err
	}
	uc.finished(ctx, hand)
	return hand, nil
}

func (uc *UseCase) deal(ctx context.Context, tx *gorm.DB, userID int64, amount int64) (*domain.BlackjackHand, error) {
	userRepo := uc.userRepo.WithTransaction(tx)
	walletRepo := uc.walletRepo.WithTransaction(tx)
	handRepo := uc.handRepo.WithTransaction(tx)

	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.NewDatabaseError("get user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError(domain.ErrCodeUserNotFound, "User")
	}
	if user.IsBlocked {
		return nil, domain.NewAppError(domain.ErrCodeUserBlocked, "User is blocked", http.StatusForbidden, nil)
	}

	active, err := handRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewDatabaseError("get active hand", err)
	}
	if active != nil {
		return nil, domain.NewConflictError(domain.ErrCodeHandAlreadyActive, "Finish the current hand first")
	}

	if amount < uc.cfg.MinBet || amount > uc.cfg.MaxBet {
		return nil, domain.NewAppError(domain.ErrCodeInvalidAmount,
			fmt.Sprintf("Bet amount must be between %d and %d", uc.cfg.MinBet, uc.cfg.MaxBet),
			http.StatusBadRequest, nil)
	}

	debited, err := walletRepo.Debit(ctx, userID, amount)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			return nil, domain.NewAppError(domain.ErrCodeInsufficientBalance, "Insufficient balance", http.StatusBadRequest, nil)
		}
		if errors.Is(err, domain.ErrWalletNotFound) {
			return nil, domain.NewNotFoundError(domain.ErrCodeWalletNotFound, "Wallet")
		}
		return nil, domain.NewDatabaseError("debit wallet", err)
	}

	now := uc.clock.Now()
	hand := &domain.BlackjackHand{
		UserID:      userID,
		PlayerCards: domain.Cards{},
		DealerCards: domain.Cards{},
		Shoe:        uc.newShoe(),
		BetAmount:   amount,
		Status:      domain.HandStatusPlaying,
		CreatedAt:   now,
	}
	for i := 0; i < 2; i++ {
		hand.PlayerCards = append(hand.PlayerCards, uc.draw(hand))
		hand.DealerCards = append(hand.DealerCards, uc.draw(hand))
	}

	if err := handRepo.Create(ctx, hand); err != nil {
		return nil, domain.NewDatabaseError("create hand", err)
	}

	if err := walletRepo.RecordTransaction(ctx, &domain.WalletTransaction{
		UserID:     userID,
		Type:       domain.WalletTransactionBlackjackBet,
		Amount:     -amount,
		OldBalance: debited.Balance + amount,
		NewBalance: debited.Balance,
		Reference:  fmt.Sprintf("hand:%d", hand.ID),
		CreatedAt:  now,
	}); err != nil {
		return nil, domain.NewDatabaseError("record wallet transaction", err)
	}
	return hand, nil
}

// playingHand loads the user's active hand and requires it to await the player
func (uc *UseCase) playingHand(ctx context.Context, tx *gorm.DB, userID int64) (*domain.BlackjackHand, error) {
	hand, err := uc.handRepo.WithTransaction(tx).GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewDatabaseError("get active hand", err)
	}
	if hand == nil {
		return nil, handNotFound()
	}
	if hand.Status != domain.HandStatusPlaying {
		return nil, invalidHandState(hand.Status)
	}
	return hand, nil
}

// stand moves the hand to the dealer's turn, draws the dealer to 17 and settles
func (uc *UseCase) stand(ctx context.Context, tx *gorm.DB, hand *domain.BlackjackHand, now time.Time) error {
	handRepo := uc.handRepo.WithTransaction(tx)

	hand.Status = domain.HandStatusDealerTurn
	if err := save(ctx, handRepo, hand, domain.HandStatusPlaying); err != nil {
		return err
	}

	for hand.DealerValue() < domain.DealerStandsOn {
		hand.DealerCards = append(hand.DealerCards, uc.draw(hand))
	}

	result, payout := domain.HandOutcome(hand.PlayerCards, hand.DealerCards, hand.BetAmount)
	hand.Finish(result, payout, now)
	if err := save(ctx, handRepo, hand, domain.HandStatusDealerTurn); err != nil {
		return err
	}
	return uc.settle(ctx, tx, hand)
}

// settle credits the payout of a finished hand and queues its event
func (uc *UseCase) settle(ctx context.Context, tx *gorm.DB, hand *domain.BlackjackHand) error {
	payout := *hand.Payout
	if payout > 0 {
		walletRepo := uc.walletRepo.WithTransaction(tx)
		credited, err := walletRepo.Credit(ctx, hand.UserID, payout)
		if err != nil {
			return domain.NewDatabaseError("credit wallet", err)
		}
		if err := walletRepo.RecordTransaction(ctx, &domain.WalletTransaction{
			UserID:     hand.UserID,
			Type:       domain.WalletTransactionBlackjackPayout,
			Amount:     payout,
			OldBalance: credited.Balance - payout,
			NewBalance: credited.Balance,
			Reference:  fmt.Sprintf("hand:%d", hand.ID),
			CreatedAt:  *hand.FinishedAt,
		}); err != nil {
			return domain.NewDatabaseError("record wallet transaction", err)
		}
	}

	event := &domain.OutboxEvent{
		ID:   uuid.NewString(),
		Type: domain.EventTypeBlackjackHandFinished,
		Data: domain.JSONB{
			"hand_id":      hand.ID,
			"user_id":      hand.UserID,
			"bet_amount":   hand.BetAmount,
			"result":       string(*hand.Result),
			"payout":       payout,
			"player_cards": cardCodes(hand.PlayerCards),
			"dealer_cards": cardCodes(hand.DealerCards),
			"player_value": hand.PlayerValue(),
			"dealer_value": hand.DealerValue(),
			"finished_at":  *hand.FinishedAt,
		},
		Status:    domain.EventStatusPending,
		CreatedAt: *hand.FinishedAt,
	}
	if err := uc.outboxRepo.WithTransaction(tx).Save(ctx, event); err != nil {
		return domain.NewDatabaseError("save outbox event", err)
	}
	return nil
}

// finished records metrics and logs once a hand has been committed as finished
func (uc *UseCase) finished(ctx context.Context, hand *domain.BlackjackHand) {
	if hand.IsActive() {
		return
	}
	metrics.RecordHand(string(*hand.Result), hand.BetAmount, *hand.Payout)
	uc.logger.WithContext(ctx).Info("Blackjack hand finished",
		zap.Int64("handID", hand.ID),
		zap.Int64("userID", hand.UserID),
		zap.String("result", string(*hand.Result)),
		zap.Int("playerValue", hand.PlayerValue()),
		zap.Int("dealerValue", hand.DealerValue()),
		zap.Int64("bet", hand.BetAmount),
		zap.Int64("payout", *hand.Payout))
}

// save persists the hand if its stored status is still expected
func save(ctx context.Context, repo domain.BlackjackHandRepository, hand *domain.BlackjackHand, expected domain.HandStatus) error {
	ok, err := repo.Save(ctx, hand, expected)
	if err != nil {
		return domain.NewDatabaseError("save hand", err)
	}
	if !ok {
		return invalidHandState(expected)
	}
	return nil
}

func cardCodes(cards domain.Cards) []string {
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = c.String()
	}
	return codes
}
