package webserver

import (
	"errors"
	"net/http"

	"github.com/nantokaworks/card-roulette/internal/roulette"
	"github.com/nantokaworks/card-roulette/internal/settlement"
)

// handleListRoulettes re-fetches the roulette configuration and returns
// the active, fully resolved set.
func (s *Services) handleListRoulettes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Resolver.LoadActiveRoulettes())
}

type spinResponse struct {
	Result  *roulette.SpinResult `json:"result"`
	Outcome *settlement.Outcome  `json:"outcome"`
}

// handleSpin runs one spin through the engine and settles it immediately.
// The wheel animation is purely visual; by the time the browser starts
// animating, the reward is already in the ledgers.
func (s *Services) handleSpin(w http.ResponseWriter, r *http.Request) {
	rouletteID := r.PathValue("id")

	result, err := s.Engine.Spin(rouletteID)
	if err != nil {
		switch {
		case errors.Is(err, roulette.ErrSpinPending):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, roulette.ErrUnknownRoulette):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	outcome := s.Settler.Settle(result)
	resp := spinResponse{Result: result, Outcome: outcome}

	BroadcastWSMessage("spin_settled", resp)
	writeJSON(w, http.StatusOK, resp)
}
