package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	betTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casino_roulette_bets_total",
			Help: "Roulette bet admissions by result and bet kind",
		},
		[]string{"result", "kind"},
	)

	betDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "casino_roulette_bet_duration_ms",
			Help:    "Roulette bet admission duration in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"result"},
	)

	roundsSettled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "casino_roulette_rounds_settled_total",
			Help: "Roulette rounds settled",
		},
	)

	settlementDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "casino_roulette_settlement_duration_ms",
			Help:    "Roulette settlement duration in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	drawnNumbers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casino_roulette_draws_total",
			Help: "Drawn pockets by colour",
		},
		[]string{"color"},
	)

	chipsFlow = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casino_chips_total",
			Help: "Chips staked and paid out by game",
		},
		[]string{"game", "direction"},
	)

	handsFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casino_blackjack_hands_total",
			Help: "Finished blackjack hands by result",
		},
		[]string{"result"},
	)
)

// RecordBet records a bet admission attempt. result is "success" or "fail".
func RecordBet(result, kind string, amount int64, started time.Time) {
	res := result
	if res != "success" {
		res = "fail"
	}
	betTotal.WithLabelValues(res, kind).Inc()
	betDuration.WithLabelValues(res).Observe(float64(time.Since(started).Milliseconds()))
	if res == "success" {
		chipsFlow.WithLabelValues("roulette", "staked").Add(float64(amount))
	}
}

// RecordSettlement records a completed round settlement
func RecordSettlement(color string, paidOut int64, started time.Time) {
	roundsSettled.Inc()
	drawnNumbers.WithLabelValues(color).Inc()
	chipsFlow.WithLabelValues("roulette", "paid").Add(float64(paidOut))
	settlementDuration.Observe(float64(time.Since(started).Milliseconds()))
}

// RecordHand records a finished blackjack hand
func RecordHand(result string, staked, paidOut int64) {
	handsFinished.WithLabelValues(result).Inc()
	chipsFlow.WithLabelValues("blackjack", "staked").Add(float64(staked))
	chipsFlow.WithLabelValues("blackjack", "paid").Add(float64(paidOut))
}
