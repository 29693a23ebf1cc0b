package coins

import (
	"sync"

	"github.com/nantokaworks/card-roulette/internal/cards"
	"github.com/nantokaworks/card-roulette/internal/shared/logger"
	"github.com/nantokaworks/card-roulette/internal/store"
	"go.uber.org/zap"
)

// Ledger holds the coin balance. The in-memory balance is authoritative
// and every mutation happens under one mutex, so two near-simultaneous
// purchases can never both pass the sufficiency check against a stale
// value. Writes to the store happen inside the same critical section.
type Ledger struct {
	mu      sync.Mutex
	store   store.Store
	cfg     Config
	balance int
	loaded  bool
}

func NewLedger(st store.Store, cfg Config) *Ledger {
	return &Ledger{store: st, cfg: cfg}
}

// balanceLocked lazily loads the persisted balance. First access with no
// stored value initializes it to the configured starting coins and
// persists that before returning.
func (l *Ledger) balanceLocked() int {
	if l.loaded {
		return l.balance
	}

	stored := 0
	if l.store.Get(store.RecordCoins.Key(), &stored) {
		l.balance = stored
	} else {
		l.balance = l.cfg.InitialCoins
		l.store.Set(store.RecordCoins.Key(), l.balance)
		logger.Info("Initial coins set", zap.Int("amount", l.balance))
	}
	l.loaded = true
	return l.balance
}

func (l *Ledger) persistLocked() {
	if !l.store.Set(store.RecordCoins.Key(), l.balance) {
		// In-memory state stays authoritative; the next successful write
		// reconciles the store.
		logger.Error("Failed to persist coin balance", zap.Int("balance", l.balance))
	}
}

// Balance returns the current coin balance.
func (l *Ledger) Balance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceLocked()
}

// AddCoins credits the balance. Amounts <= 0 are ignored.
func (l *Ledger) AddCoins(amount int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount <= 0 {
		return l.balanceLocked()
	}
	l.balance = l.balanceLocked() + amount
	l.persistLocked()
	logger.Info("Coins added", zap.Int("amount", amount), zap.Int("balance", l.balance))
	return l.balance
}

// SpendCoins debits the balance if it covers the amount. Returns false,
// leaving the balance unchanged, on amounts <= 0 or insufficient funds.
func (l *Ledger) SpendCoins(amount int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount <= 0 {
		return false
	}
	current := l.balanceLocked()
	if current < amount {
		logger.Info("Insufficient coins", zap.Int("have", current), zap.Int("need", amount))
		return false
	}
	l.balance = current - amount
	l.persistLocked()
	logger.Info("Coins spent", zap.Int("amount", amount), zap.Int("balance", l.balance))
	return true
}

// SetBalance overwrites the balance. Negative input clamps to 0.
func (l *Ledger) SetBalance(amount int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if amount < 0 {
		amount = 0
	}
	l.balanceLocked()
	l.balance = amount
	l.persistLocked()
	logger.Info("Coins set manually", zap.Int("balance", l.balance))
	return l.balance
}

func (l *Ledger) Config() Config {
	return l.cfg
}

// CardPrice returns the shop price for a rarity, 0 if unpriced.
func (l *Ledger) CardPrice(rarity cards.Rarity) int {
	return l.cfg.RarityPrices[rarity]
}

// CoinReward resolves a reward tier to a concrete amount, 0 if unknown.
func (l *Ledger) CoinReward(tier Tier) int {
	return l.cfg.CoinRewards[tier]
}

// CanAfford reports whether the balance covers a card of the rarity.
func (l *Ledger) CanAfford(rarity cards.Rarity) bool {
	return l.Balance() >= l.CardPrice(rarity)
}
