package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hand(t *testing.T, codes ...string) Cards {
	t.Helper()
	out := make(Cards, 0, len(codes))
	for _, code := range codes {
		c, err := ParseCard(code)
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

func TestCards_Total(t *testing.T) {
	tests := []struct {
		cards []string
		want  int
	}{
		{[]string{"AS", "KH"}, 21},
		{[]string{"AS", "AH"}, 12},
		{[]string{"AS", "AH", "9C"}, 21},
		{[]string{"AS", "5H", "KD"}, 16},
		{[]string{"10S", "QH", "2D"}, 22},
		{[]string{"AS", "AH", "AD", "AC"}, 14},
		{nil, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, hand(t, tt.cards...).Total(), "%v", tt.cards)
	}
}

func TestCards_IsNatural(t *testing.T) {
	assert.True(t, hand(t, "AS", "JD").IsNatural())
	assert.False(t, hand(t, "7S", "7D", "7H").IsNatural())
	assert.False(t, hand(t, "AS", "9D").IsNatural())
}

func TestParseCard(t *testing.T) {
	c, err := ParseCard("10H")
	require.NoError(t, err)
	assert.Equal(t, Card{Rank: "10", Suit: "H"}, c)
	assert.Equal(t, "10H", c.String())

	for _, bad := range []string{"", "A", "1H", "AX", "11S"} {
		_, err := ParseCard(bad)
		assert.Error(t, err, bad)
	}
}

func TestCards_ValueAndScan(t *testing.T) {
	cards := hand(t, "AS", "10D", "7C")
	v, err := cards.Value()
	require.NoError(t, err)
	assert.Equal(t, "AS,10D,7C", v)

	var fromBytes Cards
	require.NoError(t, fromBytes.Scan([]byte("AS,10D,7C")))
	assert.Equal(t, cards, fromBytes)

	var empty Cards
	require.NoError(t, empty.Scan(""))
	assert.Empty(t, empty)

	var bad Cards
	assert.Error(t, bad.Scan("AS,ZZ"))
	assert.Error(t, bad.Scan(42))
}

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	require.Len(t, deck, 52)

	seen := make(map[Card]struct{}, len(deck))
	for _, c := range deck {
		seen[c] = struct{}{}
	}
	assert.Len(t, seen, 52)
	assert.Equal(t, Card{Rank: "2", Suit: "H"}, deck[0])
	assert.Equal(t, Card{Rank: "A", Suit: "S"}, deck[51])
}

func TestCards_Without(t *testing.T) {
	player := hand(t, "AS", "KH")
	dealer := hand(t, "2D")

	rest := NewDeck().Without(player, dealer)
	assert.Len(t, rest, 49)
	assert.False(t, rest.Contains(Card{Rank: "A", Suit: "S"}))
	assert.False(t, rest.Contains(Card{Rank: "2", Suit: "D"}))
	assert.True(t, rest.Contains(Card{Rank: "A", Suit: "H"}))
}
