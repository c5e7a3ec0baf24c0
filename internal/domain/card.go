package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Suits and ranks of a standard 52-card deck
var (
	Suits = []string{"H", "D", "C", "S"}
	Ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
)

// Card is a (rank, suit) pair
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// String returns the compact card code, e.g. "10H" or "AS"
func (c Card) String() string {
	return c.Rank + c.Suit
}

// ParseCard parses a compact card code
func ParseCard(code string) (Card, error) {
	if len(code) < 2 {
		return Card{}, fmt.Errorf("invalid card code %q", code)
	}
	card := Card{Rank: code[:len(code)-1], Suit: code[len(code)-1:]}
	if !contains(Ranks, card.Rank) || !contains(Suits, card.Suit) {
		return Card{}, fmt.Errorf("invalid card code %q", code)
	}
	return card, nil
}

// Points is the base blackjack value of the card, aces count 11
func (c Card) Points() int {
	switch c.Rank {
	case "A":
		return 11
	case "K", "Q", "J", "10":
		return 10
	default:
		return int(c.Rank[0] - '0')
	}
}

// Cards is an ordered list of cards persisted as comma separated codes
type Cards []Card

// Total computes the blackjack hand value, demoting aces from 11 to 1 while over 21
func (cs Cards) Total() int {
	total, aces := 0, 0
	for _, c := range cs {
		total += c.Points()
		if c.Rank == "A" {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// IsNatural reports a two-card 21
func (cs Cards) IsNatural() bool {
	return len(cs) == 2 && cs.Total() == 21
}

// Contains reports whether the card is in the list
func (cs Cards) Contains(card Card) bool {
	for _, c := range cs {
		if c == card {
			return true
		}
	}
	return false
}

// Scan implements the sql.Scanner interface
func (cs *Cards) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*cs = nil
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("failed to scan cards value: %v", value)
	}
	if raw == "" {
		*cs = Cards{}
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make(Cards, 0, len(parts))
	for _, p := range parts {
		card, err := ParseCard(p)
		if err != nil {
			return err
		}
		out = append(out, card)
	}
	*cs = out
	return nil
}

// Value implements the driver.Valuer interface
func (cs Cards) Value() (driver.Value, error) {
	codes := make([]string, len(cs))
	for i, c := range cs {
		codes[i] = c.String()
	}
	return strings.Join(codes, ","), nil
}

// NewDeck returns the 52 cards in suit-major order
func NewDeck() Cards {
	deck := make(Cards, 0, len(Suits)*len(Ranks))
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// Without returns the deck minus every card present in any of the given hands
func (cs Cards) Without(hands ...Cards) Cards {
	out := make(Cards, 0, len(cs))
	for _, c := range cs {
		used := false
		for _, h := range hands {
			if h.Contains(c) {
				used = true
				break
			}
		}
		if !used {
			out = append(out, c)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
