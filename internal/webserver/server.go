// Package webserver exposes the game core to the browser UI as a local
// JSON API plus a WebSocket push channel. All rendering happens in the
// browser; this layer only translates HTTP to service calls.
package webserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nantokaworks/card-roulette/internal/cards"
	"github.com/nantokaworks/card-roulette/internal/coins"
	"github.com/nantokaworks/card-roulette/internal/roulette"
	"github.com/nantokaworks/card-roulette/internal/settlement"
	"github.com/nantokaworks/card-roulette/internal/shared/logger"
	"go.uber.org/zap"
)

// Services bundles the core service instances, constructed at startup and
// injected here instead of living as ambient globals.
type Services struct {
	Cards    *cards.Service
	Coins    *coins.Ledger
	Resolver *roulette.Resolver
	Engine   *roulette.Engine
	Settler  *settlement.Settler
}

// corsMiddleware adds CORS headers so the game page can be served from a
// dev server on a different port.
func corsMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		handler(w, r)
	}
}

// NewMux wires every API route. Split out from StartWebServer so handler
// tests can drive the mux directly.
func NewMux(s *Services) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/roulettes", corsMiddleware(s.handleListRoulettes))
	mux.HandleFunc("POST /api/roulettes/{id}/spin", corsMiddleware(s.handleSpin))

	mux.HandleFunc("GET /api/cards", corsMiddleware(s.handleListCards))
	mux.HandleFunc("GET /api/cards/stats", corsMiddleware(s.handleCardStats))
	mux.HandleFunc("POST /api/cards/{id}/use", corsMiddleware(s.handleUseCard))
	mux.HandleFunc("POST /api/cards/{id}/unuse", corsMiddleware(s.handleUnuseCard))
	mux.HandleFunc("DELETE /api/cards/{id}", corsMiddleware(s.handleRemoveCard))

	mux.HandleFunc("GET /api/shop", corsMiddleware(s.handleShopListing))
	mux.HandleFunc("POST /api/shop/purchase", corsMiddleware(s.handlePurchase))

	mux.HandleFunc("GET /api/coins", corsMiddleware(s.handleGetCoins))
	mux.HandleFunc("PUT /api/coins", corsMiddleware(s.handleSetCoins))

	mux.HandleFunc("/ws", handleWS)

	return mux
}

// StartWebServer serves the API on the given port. Blocks until the
// listener fails.
func StartWebServer(port int, s *Services) error {
	startWSHub()
	addr := fmt.Sprintf(":%d", port)
	logger.Info("Starting web server", zap.String("addr", addr))
	return http.ListenAndServe(addr, NewMux(s))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
