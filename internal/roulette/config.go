package roulette

import (
	"encoding/json"
	"time"

	"github.com/nantokaworks/card-roulette/internal/cards"
	"github.com/nantokaworks/card-roulette/internal/coins"
)

// RewardKind tags what a segment pays out.
type RewardKind int

const (
	RewardNone RewardKind = iota
	RewardCard
	RewardCoins
)

// Reward is the payout of a segment: a card template, a coin tier, or
// nothing. Exactly one variant is populated per Kind.
type Reward struct {
	Kind RewardKind
	Card *cards.Template
	Tier coins.Tier
}

// Segment is one weighted slice of a roulette wheel.
type Segment struct {
	ID     string
	Label  string
	Value  string
	Weight float64
	Color  string
	Reward Reward
}

// segmentDocument is the external JSON shape of a segment in the
// roulette configuration resource: the reward is expressed as optional
// card/cardId/coins fields.
type segmentDocument struct {
	ID     string          `json:"id,omitempty"`
	Label  string          `json:"label"`
	Value  string          `json:"value,omitempty"`
	Weight float64         `json:"weight"`
	Color  string          `json:"color,omitempty"`
	Card   *cards.Template `json:"card,omitempty"`
	CardID string          `json:"cardId,omitempty"`
	Coins  coins.Tier      `json:"coins,omitempty"`
}

// MarshalJSON renders the segment in the external document shape so the
// browser wheel can consume it unchanged.
func (s Segment) MarshalJSON() ([]byte, error) {
	doc := segmentDocument{
		ID:     s.ID,
		Label:  s.Label,
		Value:  s.Value,
		Weight: s.Weight,
		Color:  s.Color,
	}
	switch s.Reward.Kind {
	case RewardCard:
		doc.Card = s.Reward.Card
	case RewardCoins:
		doc.Coins = s.Reward.Tier
	}
	return json.Marshal(doc)
}

// Config describes one roulette. Only active roulettes are spinnable.
type Config struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Segments    []Segment `json:"segments"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	Active      bool      `json:"active"`
}

// SpinResult is the provisional outcome of one spin. It is produced by
// the engine, consumed once by settlement and never persisted. A card
// reward arrives with provenance already stamped; a coin reward stays a
// tier token until settlement resolves it against the current config.
type SpinResult struct {
	RouletteID   string          `json:"rouletteId"`
	RouletteName string          `json:"rouletteName"`
	Segment      Segment         `json:"segment"`
	Timestamp    time.Time       `json:"timestamp"`
	Card         *cards.Template `json:"card,omitempty"`
	Tier         coins.Tier      `json:"coins,omitempty"`
}
