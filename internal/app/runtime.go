package app

import (
	"github.com/saradorri/casino/internal/domain"
	"github.com/saradorri/casino/internal/infrastructure/clock"
	"github.com/saradorri/casino/internal/infrastructure/random"
)

func (a *application) InitClock() domain.Clock {
	return clock.New()
}

func (a *application) InitRandomizer() domain.Randomizer {
	return random.New()
}
