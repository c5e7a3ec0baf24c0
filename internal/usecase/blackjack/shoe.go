package blackjack

import (
	"github.com/saradorri/casino/internal/domain"
	"go.uber.org/zap"
)

// newShoe returns a freshly shuffled 52-card deck
func (uc *UseCase) newShoe() domain.Cards {
	return uc.shuffle(domain.NewDeck())
}

func (uc *UseCase) shuffle(cards domain.Cards) domain.Cards {
	uc.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return cards
}

// draw takes the top card off the hand's shoe. An exhausted shoe is rebuilt from
// the cards not on the table; a full deck is used only if none are left.
func (uc *UseCase) draw(hand *domain.BlackjackHand) domain.Card {
	if len(hand.Shoe) == 0 {
		hand.Shoe = uc.shuffle(domain.NewDeck().Without(hand.PlayerCards, hand.DealerCards))
		if len(hand.Shoe) == 0 {
			uc.logger.Warn("No undealt cards left, reshuffling a full deck",
				zap.Int64("handID", hand.ID),
				zap.Int("playerCards", len(hand.PlayerCards)),
				zap.Int("dealerCards", len(hand.DealerCards)))
			hand.Shoe = uc.newShoe()
		}
	}
	last := len(hand.Shoe) - 1
	card := hand.Shoe[last]
	hand.Shoe = hand.Shoe[:last]
	return card
}
