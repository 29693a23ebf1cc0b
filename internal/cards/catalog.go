package cards

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/nantokaworks/card-roulette/internal/shared/logger"
	"go.uber.org/zap"
)

var ErrCardNotFound = errors.New("card not found in catalog")

// Catalog holds the static card definitions. The resource is read once
// and cached for the process lifetime; a missing or malformed resource
// degrades to an empty catalog so the game stays playable.
type Catalog struct {
	path  string
	once  sync.Once
	cards map[string]Template
}

func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

type catalogDocument struct {
	Cards map[string]Template `json:"cards"`
}

func (c *Catalog) load() {
	c.cards = map[string]Template{}

	raw, err := os.ReadFile(c.path)
	if err != nil {
		logger.Warn("Failed to read cards config, catalog is empty", zap.Error(err), zap.String("path", c.path))
		return
	}

	var doc catalogDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		logger.Error("Failed to parse cards config, catalog is empty", zap.Error(err), zap.String("path", c.path))
		return
	}

	c.cards = doc.Cards
	logger.Info("Loaded card definitions", zap.Int("count", len(c.cards)))
}

// Definition returns the template registered under cardID.
func (c *Catalog) Definition(cardID string) (Template, error) {
	c.once.Do(c.load)
	tmpl, ok := c.cards[cardID]
	if !ok {
		return Template{}, ErrCardNotFound
	}
	return tmpl, nil
}

// Definitions returns all card definitions keyed by id.
func (c *Catalog) Definitions() map[string]Template {
	c.once.Do(c.load)
	out := make(map[string]Template, len(c.cards))
	for id, tmpl := range c.cards {
		out[id] = tmpl
	}
	return out
}
