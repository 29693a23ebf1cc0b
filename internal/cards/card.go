package cards

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Rarity buckets, cheapest to most expensive.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Template is a card definition as it appears in the catalog or inside a
// roulette segment. ObtainedFrom/ObtainedAt are stamped by the spin
// engine before the template reaches the collection.
type Template struct {
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Rarity       Rarity    `json:"rarity"`
	Image        string    `json:"image,omitempty"`
	Description  string    `json:"description,omitempty"`
	ObtainedFrom string    `json:"obtainedFrom,omitempty"`
	ObtainedAt   time.Time `json:"obtainedAt,omitzero"`
}

// Card is an owned instance in the collection ledger. Identity is
// immutable once created; only the usage state changes.
type Card struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Rarity       Rarity     `json:"rarity"`
	Image        string     `json:"image,omitempty"`
	Description  string     `json:"description,omitempty"`
	ObtainedFrom string     `json:"obtainedFrom,omitempty"`
	ObtainedAt   time.Time  `json:"obtainedAt"`
	Used         bool       `json:"used"`
	UsedAt       *time.Time `json:"usedAt"`
}

// NewCard builds a fresh Card from a template. ObtainedAt defaults to now
// when the template carries no stamp.
func NewCard(tmpl Template) *Card {
	obtainedAt := tmpl.ObtainedAt
	if obtainedAt.IsZero() {
		obtainedAt = time.Now()
	}
	return &Card{
		ID:           generateID(),
		Name:         tmpl.Name,
		Type:         tmpl.Type,
		Rarity:       tmpl.Rarity,
		Image:        tmpl.Image,
		Description:  tmpl.Description,
		ObtainedFrom: tmpl.ObtainedFrom,
		ObtainedAt:   obtainedAt,
	}
}

// Template returns the card's definition fields, without provenance.
// Used to key the unlocked set.
func (c *Card) Template() Template {
	return Template{
		Name:        c.Name,
		Type:        c.Type,
		Rarity:      c.Rarity,
		Image:       c.Image,
		Description: c.Description,
	}
}

func generateID() string {
	id, err := gonanoid.New()
	if err != nil {
		// gonanoid only fails when the OS entropy source does.
		panic(err)
	}
	return "card_" + id
}

// UnlockedCard marks a card type as purchasable in the shop. Entries are
// deduplicated by the (name, type, rarity) triple.
type UnlockedCard struct {
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Rarity      Rarity    `json:"rarity"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

func (u UnlockedCard) matches(tmpl Template) bool {
	return u.Name == tmpl.Name && u.Type == tmpl.Type && u.Rarity == tmpl.Rarity
}

// Filter criteria for the collection; all set fields are AND-combined.
type Filter struct {
	Used         *bool
	Type         string
	Rarity       Rarity
	ObtainedFrom string
	NameContains string
}

// Stats aggregates the collection. Total and Used include cards that were
// consumed and physically removed; ByType/ByRarity cover only cards still
// held and unused.
type Stats struct {
	Total     int            `json:"total"`
	Available int            `json:"available"`
	Used      int            `json:"used"`
	ByType    map[string]int `json:"byType"`
	ByRarity  map[Rarity]int `json:"byRarity"`
}
