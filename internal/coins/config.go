package coins

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nantokaworks/card-roulette/internal/cards"
)

// Tier is a named coin-reward bucket resolved to an amount via config.
type Tier string

const (
	TierSmall  Tier = "small"
	TierMedium Tier = "medium"
	TierLarge  Tier = "large"
	TierHuge   Tier = "huge"
)

// Config prices the whole game: card prices per rarity, coin amounts per
// reward tier, and the starting balance.
type Config struct {
	RarityPrices map[cards.Rarity]int `json:"rarityPrices"`
	CoinRewards  map[Tier]int         `json:"coinRewards"`
	InitialCoins int                  `json:"initialCoins"`
}

// LoadConfig reads the coins configuration resource. The game cannot
// price anything without it, so failure here is fatal for the ledger and
// must be surfaced to the caller.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("coins config unavailable: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("coins config malformed: %w", err)
	}
	if cfg.RarityPrices == nil || cfg.CoinRewards == nil {
		return Config{}, fmt.Errorf("coins config incomplete: rarityPrices and coinRewards are required")
	}
	return cfg, nil
}

// FallbackConfig is a hard-coded pricing table for explicit degraded-mode
// use (local tooling, tests). It must never silently replace a failed
// LoadConfig in the primary path.
func FallbackConfig() Config {
	return Config{
		RarityPrices: map[cards.Rarity]int{
			cards.RarityCommon:    10,
			cards.RarityUncommon:  25,
			cards.RarityRare:      50,
			cards.RarityEpic:      100,
			cards.RarityLegendary: 250,
		},
		CoinRewards: map[Tier]int{
			TierSmall:  5,
			TierMedium: 15,
			TierLarge:  30,
			TierHuge:   75,
		},
		InitialCoins: 50,
	}
}
