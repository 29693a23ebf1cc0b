package roulette

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrUnknownRoulette   = errors.New("unknown roulette")
	ErrInactiveRoulette  = errors.New("roulette is not active")
	ErrNoSegments        = errors.New("roulette has no segments")
	ErrNoSpinnableWeight = errors.New("roulette has no positive segment weight")
	ErrSpinPending       = errors.New("previous spin not settled yet")
)

// Engine performs weighted segment selection. It never touches the card
// or coin ledgers; it only produces a provisional SpinResult.
//
// A roulette with an unsettled spin rejects further spins until Resolve
// is called for it. The pending set is keyed by roulette id, so spins of
// different roulettes never cross-contaminate.
type Engine struct {
	resolver *Resolver
	rng      RandomSource

	mu      sync.Mutex
	pending map[string]bool
}

// NewEngine builds an engine over the resolver's session cache. A nil rng
// selects the crypto-backed default.
func NewEngine(resolver *Resolver, rng RandomSource) *Engine {
	if rng == nil {
		rng = DefaultSource()
	}
	return &Engine{
		resolver: resolver,
		rng:      rng,
		pending:  make(map[string]bool),
	}
}

// Spin selects a segment of the roulette with probability proportional to
// its weight: draw r uniformly from [0, totalWeight), walk the segments
// in declaration order subtracting each weight, and select where the
// running value first drops to <= 0. Floating-point drift falls back to
// the last segment deterministically.
func (e *Engine) Spin(rouletteID string) (*SpinResult, error) {
	cfg := e.resolver.RouletteByID(rouletteID)
	if cfg == nil {
		return nil, ErrUnknownRoulette
	}
	if !cfg.Active {
		return nil, ErrInactiveRoulette
	}
	if len(cfg.Segments) == 0 {
		return nil, ErrNoSegments
	}

	totalWeight := 0.0
	for _, seg := range cfg.Segments {
		totalWeight += seg.Weight
	}
	if totalWeight <= 0 {
		return nil, ErrNoSpinnableWeight
	}

	e.mu.Lock()
	if e.pending[rouletteID] {
		e.mu.Unlock()
		return nil, ErrSpinPending
	}
	e.pending[rouletteID] = true
	e.mu.Unlock()

	r := e.rng.Float64() * totalWeight
	var selected *Segment
	for i := range cfg.Segments {
		r -= cfg.Segments[i].Weight
		if r <= 0 {
			selected = &cfg.Segments[i]
			break
		}
	}
	if selected == nil {
		selected = &cfg.Segments[len(cfg.Segments)-1]
	}

	result := &SpinResult{
		RouletteID:   cfg.ID,
		RouletteName: cfg.Name,
		Segment:      *selected,
		Timestamp:    time.Now(),
	}

	switch selected.Reward.Kind {
	case RewardCard:
		card := *selected.Reward.Card
		card.ObtainedFrom = cfg.ID
		card.ObtainedAt = result.Timestamp
		result.Card = &card
	case RewardCoins:
		// Tier only; the amount is resolved at settlement time so pricing
		// changes never apply retroactively to unsettled spins.
		result.Tier = selected.Reward.Tier
	}

	return result, nil
}

// Resolve marks the roulette's in-flight spin as settled, allowing the
// next spin. Called by settlement once the result has been applied.
func (e *Engine) Resolve(rouletteID string) {
	e.mu.Lock()
	delete(e.pending, rouletteID)
	e.mu.Unlock()
}

// SpinPending reports whether the roulette has an unsettled spin.
func (e *Engine) SpinPending(rouletteID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending[rouletteID]
}
