package webserver

import (
	"net/http"

	"github.com/nantokaworks/card-roulette/internal/cards"
)

// handleListCards returns the owned collection, optionally filtered via
// query parameters (used, type, rarity, obtainedFrom, name).
func (s *Services) handleListCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := cards.Filter{
		Type:         q.Get("type"),
		Rarity:       cards.Rarity(q.Get("rarity")),
		ObtainedFrom: q.Get("obtainedFrom"),
		NameContains: q.Get("name"),
	}
	switch q.Get("used") {
	case "true":
		used := true
		filter.Used = &used
	case "false":
		used := false
		filter.Used = &used
	}
	writeJSON(w, http.StatusOK, s.Cards.FilterCards(filter))
}

func (s *Services) handleCardStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Cards.Stats())
}

func (s *Services) handleUseCard(w http.ResponseWriter, r *http.Request) {
	card := s.Cards.UseCard(r.PathValue("id"))
	if card == nil {
		writeError(w, http.StatusNotFound, "card not found or already used")
		return
	}
	BroadcastWSMessage("card_used", card)
	writeJSON(w, http.StatusOK, card)
}

func (s *Services) handleUnuseCard(w http.ResponseWriter, r *http.Request) {
	card := s.Cards.UnuseCard(r.PathValue("id"))
	if card == nil {
		writeError(w, http.StatusNotFound, "card not found or not used")
		return
	}
	BroadcastWSMessage("card_unused", card)
	writeJSON(w, http.StatusOK, card)
}

// handleRemoveCard deletes a card. ?used=true records the deletion as
// consumption so it keeps counting in the aggregate stats.
func (s *Services) handleRemoveCard(w http.ResponseWriter, r *http.Request) {
	wasUsed := r.URL.Query().Get("used") == "true"
	if !s.Cards.RemoveCard(r.PathValue("id"), wasUsed) {
		writeError(w, http.StatusNotFound, "card not found")
		return
	}
	BroadcastWSMessage("card_removed", map[string]any{"id": r.PathValue("id"), "used": wasUsed})
	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}
