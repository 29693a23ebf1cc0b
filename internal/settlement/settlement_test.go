package settlement

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nantokaworks/card-roulette/internal/cards"
	"github.com/nantokaworks/card-roulette/internal/coins"
	"github.com/nantokaworks/card-roulette/internal/roulette"
	"github.com/nantokaworks/card-roulette/internal/store"
)

type fixture struct {
	cards   *cards.Service
	coins   *coins.Ledger
	engine  *roulette.Engine
	settler *Settler
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func newFixture(t *testing.T, rouletteConfig string, initialCoins int) *fixture {
	t.Helper()
	st := store.NewMemoryStore()

	catalog := cards.NewCatalog(writeFile(t, "cards-config.json", `{"cards": {
		"pikachu": {"name": "Pikachu", "type": "electric", "rarity": "common"}
	}}`))
	cardSvc := cards.NewService(st, catalog)

	cfg := coins.FallbackConfig()
	cfg.InitialCoins = initialCoins
	ledger := coins.NewLedger(st, cfg)

	resolver := roulette.NewResolver(writeFile(t, "roulettes-config.json", rouletteConfig), catalog)
	resolver.LoadActiveRoulettes()
	engine := roulette.NewEngine(resolver, roulette.NewSeededSource(7))

	return &fixture{
		cards:   cardSvc,
		coins:   ledger,
		engine:  engine,
		settler: NewSettler(cardSvc, ledger, engine),
	}
}

func TestSettleCardReward(t *testing.T) {
	f := newFixture(t, `[
		{"id": "basic", "name": "Basic", "segments": [
			{"label": "Pikachu", "weight": 1, "cardId": "pikachu"}
		]}
	]`, 0)

	result, err := f.engine.Spin("basic")
	if err != nil {
		t.Fatalf("spin failed: %v", err)
	}

	outcome := f.settler.Settle(result)
	if outcome.Card == nil || outcome.Card.Name != "Pikachu" {
		t.Fatalf("card not granted: %+v", outcome)
	}
	if outcome.Card.ObtainedFrom != "basic" {
		t.Fatalf("provenance lost in settlement: %+v", outcome.Card)
	}
	if outcome.Coins != 0 {
		t.Fatalf("card reward should not grant coins: %+v", outcome)
	}

	if stats := f.cards.Stats(); stats.Total != 1 {
		t.Fatalf("collection not updated: %+v", stats)
	}
	tmpl := cards.Template{Name: "Pikachu", Type: "electric", Rarity: cards.RarityCommon}
	if !f.cards.IsCardUnlocked(tmpl) {
		t.Fatalf("settling a card must unlock its type")
	}
	if f.engine.SpinPending("basic") {
		t.Fatalf("settlement must release the pending spin")
	}
}

func TestSettleCoinReward(t *testing.T) {
	f := newFixture(t, `[
		{"id": "coins", "name": "Coins", "segments": [
			{"label": "Jackpot", "weight": 1, "coins": "huge"}
		]}
	]`, 10)

	result, err := f.engine.Spin("coins")
	if err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	if result.Tier != "huge" {
		t.Fatalf("expected tier token on result: %+v", result)
	}

	outcome := f.settler.Settle(result)
	if outcome.Coins != 75 {
		t.Fatalf("tier should resolve against config at settlement: %+v", outcome)
	}
	if outcome.Balance != 85 {
		t.Fatalf("unexpected balance: %+v", outcome)
	}
	if stats := f.cards.Stats(); stats.Total != 0 {
		t.Fatalf("coin reward must not touch the collection: %+v", stats)
	}
}

func TestSettleEmptySegment(t *testing.T) {
	f := newFixture(t, `[
		{"id": "dud", "name": "Dud", "segments": [
			{"label": "Nothing", "weight": 1}
		]}
	]`, 10)

	result, _ := f.engine.Spin("dud")
	outcome := f.settler.Settle(result)
	if outcome.Card != nil || outcome.Coins != 0 {
		t.Fatalf("empty segment should grant nothing: %+v", outcome)
	}
	if outcome.Balance != 10 {
		t.Fatalf("balance must be unchanged: %+v", outcome)
	}
	if f.engine.SpinPending("dud") {
		t.Fatalf("pending spin not released")
	}
}

func TestSettleUnknownTierStillReleases(t *testing.T) {
	f := newFixture(t, `[
		{"id": "odd", "name": "Odd", "segments": [
			{"label": "Mystery", "weight": 1, "coins": "colossal"}
		]}
	]`, 10)

	result, _ := f.engine.Spin("odd")
	outcome := f.settler.Settle(result)
	if outcome.Coins != 0 || outcome.Balance != 10 {
		t.Fatalf("unknown tier should grant nothing: %+v", outcome)
	}
	if f.engine.SpinPending("odd") {
		t.Fatalf("pending spin not released")
	}
}

// The full gameplay journey: win a card by chance, fail a purchase
// while broke, succeed once funded.
func TestSpinThenShopEndToEnd(t *testing.T) {
	f := newFixture(t, `[
		{"id": "basic", "name": "Basic", "segments": [
			{"label": "Pikachu", "weight": 1, "cardId": "pikachu"}
		]}
	]`, 5)

	result, err := f.engine.Spin("basic")
	if err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	f.settler.Settle(result)

	if stats := f.cards.Stats(); stats.Total != 1 {
		t.Fatalf("expected one card after spin: %+v", stats)
	}
	tmpl := cards.Template{Name: "Pikachu", Type: "electric", Rarity: cards.RarityCommon}
	if !f.cards.IsCardUnlocked(tmpl) {
		t.Fatalf("Pikachu should be unlocked for purchase")
	}

	// Broke: common costs 10, balance is 5.
	price := f.coins.CardPrice(cards.RarityCommon)
	if f.coins.SpendCoins(price) {
		t.Fatalf("purchase at balance 5 should fail")
	}
	if got := f.coins.Balance(); got != 5 {
		t.Fatalf("failed purchase must leave balance at 5: got=%d", got)
	}

	// Funded: 15 covers the price, leaving 5.
	f.coins.AddCoins(10)
	if !f.coins.SpendCoins(price) {
		t.Fatalf("purchase at balance 15 should succeed")
	}
	card, err := f.cards.PurchaseCardByID("pikachu")
	if err != nil {
		t.Fatalf("PurchaseCardByID failed: %v", err)
	}
	if card.ObtainedFrom != "shop" {
		t.Fatalf("purchased card should be stamped from the shop: %+v", card)
	}
	if got := f.coins.Balance(); got != 5 {
		t.Fatalf("unexpected balance after purchase: got=%d", got)
	}
	if stats := f.cards.Stats(); stats.Total != 2 {
		t.Fatalf("expected two cards after purchase: %+v", stats)
	}
}
