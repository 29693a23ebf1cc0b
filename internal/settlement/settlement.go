// Package settlement applies a determined spin result to the persistent
// ledgers. It is the only place allowed to chain a collection mutation
// and a coin mutation for one spin.
package settlement

import (
	"github.com/nantokaworks/card-roulette/internal/cards"
	"github.com/nantokaworks/card-roulette/internal/coins"
	"github.com/nantokaworks/card-roulette/internal/roulette"
	"github.com/nantokaworks/card-roulette/internal/shared/logger"
	"go.uber.org/zap"
)

// Outcome reports what a settled spin actually granted.
type Outcome struct {
	Card    *cards.Card `json:"card,omitempty"`
	Coins   int         `json:"coins,omitempty"`
	Balance int         `json:"balance"`
}

type Settler struct {
	cards  *cards.Service
	coins  *coins.Ledger
	engine *roulette.Engine
}

func NewSettler(cardSvc *cards.Service, ledger *coins.Ledger, engine *roulette.Engine) *Settler {
	return &Settler{cards: cardSvc, coins: ledger, engine: engine}
}

// Settle grants the spin's reward. A card reward goes through AddCard
// (which also unlocks the card type); a coin reward is resolved from its
// tier against the current config and credited. The two effects are
// independent: a card already granted is never rolled back. The spin is
// always marked settled, even when granting fails — once determined, a
// result must not block the roulette forever.
func (s *Settler) Settle(result *roulette.SpinResult) *Outcome {
	defer s.engine.Resolve(result.RouletteID)

	outcome := &Outcome{}
	if result.Card != nil {
		outcome.Card = s.cards.AddCard(*result.Card)
	}
	if result.Tier != "" {
		amount := s.coins.CoinReward(result.Tier)
		if amount > 0 {
			s.coins.AddCoins(amount)
			outcome.Coins = amount
		} else {
			logger.Warn("Unknown coin reward tier", zap.String("tier", string(result.Tier)))
		}
	}
	outcome.Balance = s.coins.Balance()

	logger.Info("Spin settled",
		zap.String("roulette", result.RouletteID),
		zap.String("segment", result.Segment.Label),
		zap.Int("coins", outcome.Coins),
		zap.Int("balance", outcome.Balance))
	return outcome
}
