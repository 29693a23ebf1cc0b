package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/nantokaworks/card-roulette/internal/cards"
	"github.com/nantokaworks/card-roulette/internal/coins"
	"github.com/nantokaworks/card-roulette/internal/env"
	"github.com/nantokaworks/card-roulette/internal/localdb"
	"github.com/nantokaworks/card-roulette/internal/roulette"
	"github.com/nantokaworks/card-roulette/internal/settlement"
	"github.com/nantokaworks/card-roulette/internal/shared/logger"
	"github.com/nantokaworks/card-roulette/internal/shared/paths"
	"github.com/nantokaworks/card-roulette/internal/store"
	"github.com/nantokaworks/card-roulette/internal/webserver"
	"go.uber.org/zap"
)

func main() {
	logger.Init(false)
	defer logger.Sync()

	logger.Info("Starting card-roulette server")

	env.LoadEnv()
	if env.Value.DebugMode {
		logger.Init(true)
		logger.Info("Debug mode enabled")
	}

	if err := paths.EnsureDataDirs(); err != nil {
		logger.Fatal("Failed to ensure data directories", zap.Error(err))
	}

	db, err := localdb.Setup(paths.DBPath())
	if err != nil {
		logger.Fatal("Failed to setup database", zap.Error(err))
	}
	defer db.Close()

	st := store.NewSQLiteStore(db)

	catalog := cards.NewCatalog(paths.ConfigPath("cards-config.json"))
	cardSvc := cards.NewService(st, catalog)

	// The game cannot price anything without the coins config; a missing
	// resource is fatal, never silently defaulted.
	coinCfg, err := coins.LoadConfig(paths.ConfigPath("coins-config.json"))
	if err != nil {
		logger.Fatal("Failed to load coins configuration", zap.Error(err))
	}
	ledger := coins.NewLedger(st, coinCfg)

	resolver := roulette.NewResolver(paths.ConfigPath("roulettes-config.json"), catalog)
	engine := roulette.NewEngine(resolver, nil)
	settler := settlement.NewSettler(cardSvc, ledger, engine)

	// Warm the session cache so spins work before any page load.
	resolver.LoadActiveRoulettes()

	services := &webserver.Services{
		Cards:    cardSvc,
		Coins:    ledger,
		Resolver: resolver,
		Engine:   engine,
		Settler:  settler,
	}

	go func() {
		if err := webserver.StartWebServer(env.Value.ServerPort, services); err != nil {
			logger.Fatal("Failed to start web server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")
}
