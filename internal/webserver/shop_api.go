package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/nantokaworks/card-roulette/internal/cards"
)

type shopEntry struct {
	cards.UnlockedCard
	Price      int  `json:"price"`
	Affordable bool `json:"affordable"`
}

// handleShopListing returns every unlocked card type with its price and
// whether the current balance covers it.
func (s *Services) handleShopListing(w http.ResponseWriter, r *http.Request) {
	unlocked := s.Cards.UnlockedCards()
	balance := s.Coins.Balance()

	entries := make([]shopEntry, 0, len(unlocked))
	for _, entry := range unlocked {
		price := s.Coins.CardPrice(entry.Rarity)
		entries = append(entries, shopEntry{
			UnlockedCard: entry,
			Price:        price,
			Affordable:   balance >= price,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"balance": balance, "cards": entries})
}

type purchaseRequest struct {
	CardID string          `json:"cardId,omitempty"`
	Card   *cards.Template `json:"card,omitempty"`
}

// handlePurchase runs the shop flow: price the card, debit the coins,
// then add the card stamped as a shop purchase. The debit happens first;
// PurchaseCard itself never touches coins.
func (s *Services) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var tmpl cards.Template
	if req.CardID != "" {
		resolved, err := s.Cards.Catalog().Definition(req.CardID)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		tmpl = resolved
	} else if req.Card != nil {
		tmpl = *req.Card
	} else {
		writeError(w, http.StatusBadRequest, "cardId or card is required")
		return
	}

	if !s.Cards.IsCardUnlocked(tmpl) {
		writeError(w, http.StatusForbidden, "card type is not unlocked")
		return
	}

	price := s.Coins.CardPrice(tmpl.Rarity)
	if !s.Coins.SpendCoins(price) {
		writeError(w, http.StatusPaymentRequired, "insufficient coins")
		return
	}

	card := s.Cards.PurchaseCard(tmpl)
	resp := map[string]any{"card": card, "balance": s.Coins.Balance()}
	BroadcastWSMessage("card_purchased", resp)
	writeJSON(w, http.StatusOK, resp)
}
