package roulette

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/nantokaworks/card-roulette/internal/cards"
	"github.com/nantokaworks/card-roulette/internal/shared/logger"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

// Resolver loads roulette definitions from the configuration resource and
// resolves segment card references against the catalog. The resource is
// re-fetched on every LoadActiveRoulettes call (a persisted copy is never
// trusted); the resolved list is cached for the session so spins can look
// roulettes up without re-resolving.
type Resolver struct {
	path    string
	catalog *cards.Catalog

	mu      sync.RWMutex
	session []Config
}

func NewResolver(path string, catalog *cards.Catalog) *Resolver {
	return &Resolver{path: path, catalog: catalog}
}

type rouletteDocument struct {
	ID          string            `json:"id,omitempty"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Segments    []segmentDocument `json:"segments"`
	Active      *bool             `json:"active,omitempty"`
}

// LoadActiveRoulettes returns the active roulettes, freshly read from the
// configuration resource. A missing or malformed resource degrades to the
// built-in sample set; the game stays playable either way.
func (r *Resolver) LoadActiveRoulettes() []Config {
	docs, err := r.fetch()
	if err != nil {
		logger.Warn("Falling back to sample roulettes", zap.Error(err), zap.String("path", r.path))
		docs = sampleRoulettes()
	}

	resolved := make([]Config, 0, len(docs))
	for _, doc := range docs {
		resolved = append(resolved, r.resolve(doc))
	}

	r.mu.Lock()
	r.session = resolved
	r.mu.Unlock()

	active := make([]Config, 0, len(resolved))
	for _, cfg := range resolved {
		if cfg.Active {
			active = append(active, cfg)
		}
	}
	logger.Info("Loaded roulettes", zap.Int("total", len(resolved)), zap.Int("active", len(active)))
	return active
}

func (r *Resolver) fetch() ([]rouletteDocument, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, err
	}

	var docs []rouletteDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		return nil, errors.New("roulette config must be an array")
	}
	return docs, nil
}

func (r *Resolver) resolve(doc rouletteDocument) Config {
	cfg := Config{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		Active:      doc.Active == nil || *doc.Active,
	}
	if cfg.ID == "" {
		cfg.ID = generateRouletteID()
	}

	cfg.Segments = make([]Segment, 0, len(doc.Segments))
	for _, seg := range doc.Segments {
		if seg.Weight <= 0 {
			logger.Warn("Dropping segment with non-positive weight",
				zap.String("roulette", cfg.Name), zap.String("label", seg.Label))
			continue
		}
		cfg.Segments = append(cfg.Segments, r.resolveSegment(cfg.Name, seg))
	}
	return cfg
}

func (r *Resolver) resolveSegment(rouletteName string, doc segmentDocument) Segment {
	seg := Segment{
		ID:     doc.ID,
		Label:  doc.Label,
		Value:  doc.Value,
		Weight: doc.Weight,
		Color:  doc.Color,
	}

	card := doc.Card
	if card == nil && doc.CardID != "" {
		tmpl, err := r.catalog.Definition(doc.CardID)
		if err != nil {
			logger.Warn("Card definition not found for segment reference",
				zap.String("roulette", rouletteName), zap.String("cardId", doc.CardID))
		} else {
			card = &tmpl
		}
	}

	switch {
	case card != nil:
		if doc.Coins != "" {
			logger.Warn("Segment declares both card and coins, card wins",
				zap.String("roulette", rouletteName), zap.String("label", doc.Label))
		}
		seg.Reward = Reward{Kind: RewardCard, Card: card}
	case doc.Coins != "":
		seg.Reward = Reward{Kind: RewardCoins, Tier: doc.Coins}
	default:
		seg.Reward = Reward{Kind: RewardNone}
	}
	return seg
}

// RouletteByID looks a roulette up in the session cache only. Returns nil
// when the id is unknown (or nothing was loaded yet).
func (r *Resolver) RouletteByID(id string) *Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.session {
		if r.session[i].ID == id {
			cfg := r.session[i]
			return &cfg
		}
	}
	return nil
}

func generateRouletteID() string {
	id, err := gonanoid.New()
	if err != nil {
		panic(err)
	}
	return "roulette_" + id
}
