package webserver

import (
	"encoding/json"
	"net/http"
)

func (s *Services) handleGetCoins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"balance": s.Coins.Balance()})
}

type setCoinsRequest struct {
	Balance int `json:"balance"`
}

// handleSetCoins overwrites the balance. Debug/admin surface; negative
// input clamps to zero.
func (s *Services) handleSetCoins(w http.ResponseWriter, r *http.Request) {
	var req setCoinsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	balance := s.Coins.SetBalance(req.Balance)
	BroadcastWSMessage("balance_changed", map[string]int{"balance": balance})
	writeJSON(w, http.StatusOK, map[string]int{"balance": balance})
}
