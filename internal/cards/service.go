package cards

import (
	"strings"
	"sync"
	"time"

	"github.com/nantokaworks/card-roulette/internal/shared/logger"
	"github.com/nantokaworks/card-roulette/internal/store"
	"go.uber.org/zap"
)

// Service is the collection ledger: owned cards, the unlocked-for-purchase
// set and the used-card history. Every mutation is persisted synchronously,
// so a crash loses at most the last mutation.
type Service struct {
	mu      sync.Mutex
	store   store.Store
	catalog *Catalog
}

func NewService(st store.Store, catalog *Catalog) *Service {
	return &Service{store: st, catalog: catalog}
}

// Catalog exposes the card definitions backing this ledger.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

func (s *Service) loadCards() []Card {
	cards := []Card{}
	s.store.Get(store.RecordCards.Key(), &cards)
	return cards
}

func (s *Service) saveCards(cards []Card) bool {
	return s.store.Set(store.RecordCards.Key(), cards)
}

// ListOwnedCards returns every card currently in the ledger, used and unused.
func (s *Service) ListOwnedCards() []Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadCards()
}

// AddCardByID resolves a catalog id and adds the card to the collection.
func (s *Service) AddCardByID(cardID string) (*Card, error) {
	tmpl, err := s.catalog.Definition(cardID)
	if err != nil {
		return nil, err
	}
	return s.AddCard(tmpl), nil
}

// AddCard constructs a new Card from the template, appends it to the
// ledger and unlocks the card type for purchase if it wasn't already.
func (s *Service) AddCard(tmpl Template) *Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	card := NewCard(tmpl)
	cards := append(s.loadCards(), *card)
	s.saveCards(cards)
	s.unlockLocked(card.Template())

	logger.Info("Card added to collection", zap.String("name", card.Name), zap.String("id", card.ID))
	return card
}

// GetCardByID returns the owned card with the given id, or nil.
func (s *Service) GetCardByID(cardID string) *Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, card := range s.loadCards() {
		if card.ID == cardID {
			c := card
			return &c
		}
	}
	return nil
}

// UseCard marks a card used. Returns nil when the card is absent or
// already used; that is a normal "nothing to do" outcome.
func (s *Service) UseCard(cardID string) *Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.loadCards()
	for i := range cards {
		if cards[i].ID == cardID && !cards[i].Used {
			now := time.Now()
			cards[i].Used = true
			cards[i].UsedAt = &now
			s.saveCards(cards)
			c := cards[i]
			return &c
		}
	}
	return nil
}

// UnuseCard reverts a used card back to available.
func (s *Service) UnuseCard(cardID string) *Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.loadCards()
	for i := range cards {
		if cards[i].ID == cardID && cards[i].Used {
			cards[i].Used = false
			cards[i].UsedAt = nil
			s.saveCards(cards)
			c := cards[i]
			return &c
		}
	}
	return nil
}

// RemoveCard deletes a card from the ledger. When wasUsed is true the
// deletion represents consumption: the historical counter and the
// used-card history are updated first so aggregate stats survive.
func (s *Service) RemoveCard(cardID string, wasUsed bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.loadCards()
	idx := -1
	for i := range cards {
		if cards[i].ID == cardID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	if wasUsed {
		removed := cards[idx]
		removed.Used = true
		if removed.UsedAt == nil {
			now := time.Now()
			removed.UsedAt = &now
		}
		s.appendUsedHistoryLocked([]Card{removed})
	}

	s.saveCards(append(cards[:idx], cards[idx+1:]...))
	return true
}

func (s *Service) appendUsedHistoryLocked(used []Card) {
	history := []Card{}
	s.store.Get(store.RecordUsedCardHistory.Key(), &history)
	history = append(history, used...)
	s.store.Set(store.RecordUsedCardHistory.Key(), history)

	count := 0
	s.store.Get(store.RecordUsedCardsCount.Key(), &count)
	s.store.Set(store.RecordUsedCardsCount.Key(), count+len(used))
}

// FilterCards returns owned cards matching all set criteria.
func (s *Service) FilterCards(filter Filter) []Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []Card{}
	for _, card := range s.loadCards() {
		if filter.Used != nil && card.Used != *filter.Used {
			continue
		}
		if filter.Type != "" && card.Type != filter.Type {
			continue
		}
		if filter.Rarity != "" && card.Rarity != filter.Rarity {
			continue
		}
		if filter.ObtainedFrom != "" && card.ObtainedFrom != filter.ObtainedFrom {
			continue
		}
		if filter.NameContains != "" &&
			!strings.Contains(strings.ToLower(card.Name), strings.ToLower(filter.NameContains)) {
			continue
		}
		matched = append(matched, card)
	}
	return matched
}

// AvailableCards returns the unused cards still in the collection.
func (s *Service) AvailableCards() []Card {
	used := false
	return s.FilterCards(Filter{Used: &used})
}

// UsedCardHistory returns the snapshots of consumed cards.
func (s *Service) UsedCardHistory() []Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := []Card{}
	s.store.Get(store.RecordUsedCardHistory.Key(), &history)
	return history
}

// Stats aggregates the collection including historically consumed cards.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.loadCards()
	historical := 0
	s.store.Get(store.RecordUsedCardsCount.Key(), &historical)

	stats := Stats{
		ByType:   map[string]int{},
		ByRarity: map[Rarity]int{},
	}
	for _, card := range cards {
		if card.Used {
			stats.Used++
			continue
		}
		stats.Available++
		stats.ByType[card.Type]++
		stats.ByRarity[card.Rarity]++
	}
	stats.Total = len(cards) + historical
	stats.Used += historical
	return stats
}

// CleanupUsedCards moves every used card out of the collection into the
// history, bumping the historical counter. Returns true if anything moved.
func (s *Service) CleanupUsedCards() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.loadCards()
	kept := make([]Card, 0, len(cards))
	used := []Card{}
	now := time.Now()
	for _, card := range cards {
		if !card.Used {
			kept = append(kept, card)
			continue
		}
		if card.UsedAt == nil {
			usedAt := now
			card.UsedAt = &usedAt
		}
		used = append(used, card)
	}

	if len(used) > 0 {
		s.appendUsedHistoryLocked(used)
	}
	s.saveCards(kept)
	return len(used) > 0
}

// RecountUsedHistory recomputes the historical counter from the history
// list, which is the source of truth.
func (s *Service) RecountUsedHistory() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := []Card{}
	s.store.Get(store.RecordUsedCardHistory.Key(), &history)
	s.store.Set(store.RecordUsedCardsCount.Key(), len(history))
	return len(history)
}

// ClearAll wipes the collection and the used-card history.
func (s *Service) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Remove(store.RecordUsedCardsCount.Key())
	s.store.Remove(store.RecordUsedCardHistory.Key())
	s.saveCards([]Card{})
}

func (s *Service) loadUnlocked() []UnlockedCard {
	unlocked := []UnlockedCard{}
	s.store.Get(store.RecordUnlockedCards.Key(), &unlocked)
	return unlocked
}

// UnlockCard marks a card type as purchasable. Idempotent on the
// (name, type, rarity) triple.
func (s *Service) UnlockCard(tmpl Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unlockLocked(tmpl)
}

func (s *Service) unlockLocked(tmpl Template) {
	unlocked := s.loadUnlocked()
	for _, entry := range unlocked {
		if entry.matches(tmpl) {
			return
		}
	}

	unlocked = append(unlocked, UnlockedCard{
		Name:        tmpl.Name,
		Type:        tmpl.Type,
		Rarity:      tmpl.Rarity,
		Description: tmpl.Description,
		Image:       tmpl.Image,
		UnlockedAt:  time.Now(),
	})
	s.store.Set(store.RecordUnlockedCards.Key(), unlocked)
	logger.Info("Card unlocked for purchase", zap.String("name", tmpl.Name))
}

// LockCard removes the matching entry from the unlocked set. Returns
// whether anything was removed.
func (s *Service) LockCard(tmpl Template) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlocked := s.loadUnlocked()
	kept := make([]UnlockedCard, 0, len(unlocked))
	for _, entry := range unlocked {
		if entry.matches(tmpl) {
			continue
		}
		kept = append(kept, entry)
	}
	if len(kept) == len(unlocked) {
		return false
	}
	s.store.Set(store.RecordUnlockedCards.Key(), kept)
	logger.Info("Card locked from shop", zap.String("name", tmpl.Name))
	return true
}

func (s *Service) IsCardUnlocked(tmpl Template) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.loadUnlocked() {
		if entry.matches(tmpl) {
			return true
		}
	}
	return false
}

// UnlockedCards returns the shop listing.
func (s *Service) UnlockedCards() []UnlockedCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUnlocked()
}

// ClearUnlocked empties the unlocked set.
func (s *Service) ClearUnlocked() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Remove(store.RecordUnlockedCards.Key())
}

// PurchaseCardByID resolves a catalog id and purchases the card. The
// caller must have already debited the price.
func (s *Service) PurchaseCardByID(cardID string) (*Card, error) {
	tmpl, err := s.catalog.Definition(cardID)
	if err != nil {
		return nil, err
	}
	return s.PurchaseCard(tmpl), nil
}

// PurchaseCard adds a card stamped as obtained from the shop. Unlike
// AddCard it does not touch the unlocked set; a purchasable card is
// unlocked by definition.
func (s *Service) PurchaseCard(tmpl Template) *Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmpl.ObtainedFrom = "shop"
	tmpl.ObtainedAt = time.Now()
	card := NewCard(tmpl)
	s.saveCards(append(s.loadCards(), *card))

	logger.Info("Card purchased", zap.String("name", card.Name), zap.String("id", card.ID))
	return card
}
