package store

import "fmt"

// Record identifies a persisted record kind. Keys are derived from the
// name plus an explicit version so a future migration can read the old
// key and write the new one instead of guessing at raw strings.
type Record struct {
	Name    string
	Version int
}

// Key returns the storage key for the record. Version 1 maps to the bare
// name, which keeps the on-disk layout compatible with data written by
// earlier releases of the game.
func (r Record) Key() string {
	if r.Version <= 1 {
		return r.Name
	}
	return fmt.Sprintf("%s_v%d", r.Name, r.Version)
}

// The registry of everything this game persists.
var (
	RecordCards           = Record{Name: "cards", Version: 1}
	RecordUnlockedCards   = Record{Name: "unlocked_cards", Version: 1}
	RecordCoins           = Record{Name: "coins", Version: 1}
	RecordUsedCardsCount  = Record{Name: "used_cards_count", Version: 1}
	RecordUsedCardHistory = Record{Name: "used_cards_history", Version: 1}

	// Legacy key from when roulette configs were mirrored into storage.
	// Configs are always re-fetched now; kept registered so Clear and
	// migrations know about it.
	RecordRoulettes = Record{Name: "roulettes", Version: 1}
)
