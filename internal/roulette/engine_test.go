package roulette

import (
	"errors"
	"math"
	"testing"
)

// fixedSource always returns the same fraction of the total weight.
type fixedSource struct{ v float64 }

func (f fixedSource) Float64() float64 { return f.v }

func testResolver(t *testing.T, config string) *Resolver {
	t.Helper()
	resolver := NewResolver(writeFile(t, "roulettes-config.json", config), testCatalog(t))
	resolver.LoadActiveRoulettes()
	return resolver
}

func TestSpinWeightedFrequency(t *testing.T) {
	resolver := testResolver(t, `[
		{"id": "wheel", "name": "Wheel", "segments": [
			{"label": "a", "weight": 1},
			{"label": "b", "weight": 2},
			{"label": "c", "weight": 3},
			{"label": "d", "weight": 4}
		]}
	]`)
	engine := NewEngine(resolver, NewSeededSource(42))

	const spins = 100000
	counts := map[string]int{}
	for i := 0; i < spins; i++ {
		result, err := engine.Spin("wheel")
		if err != nil {
			t.Fatalf("spin %d failed: %v", i, err)
		}
		counts[result.Segment.Label]++
		engine.Resolve("wheel")
	}

	expected := map[string]float64{"a": 0.1, "b": 0.2, "c": 0.3, "d": 0.4}
	for label, want := range expected {
		got := float64(counts[label]) / spins
		if math.Abs(got-want) > 0.01 {
			t.Fatalf("segment %q frequency off: got=%.4f want=%.4f", label, got, want)
		}
	}
}

func TestSpinSelectsByCumulativeWalk(t *testing.T) {
	resolver := testResolver(t, `[
		{"id": "wheel", "name": "Wheel", "segments": [
			{"label": "first", "weight": 1},
			{"label": "second", "weight": 1}
		]}
	]`)

	engine := NewEngine(resolver, fixedSource{v: 0.25})
	result, err := engine.Spin("wheel")
	if err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	if result.Segment.Label != "first" {
		t.Fatalf("r=0.5 of total=2 should select the first segment, got %q", result.Segment.Label)
	}
	engine.Resolve("wheel")

	engine = NewEngine(resolver, fixedSource{v: 0.75})
	result, _ = engine.Spin("wheel")
	if result.Segment.Label != "second" {
		t.Fatalf("r=1.5 of total=2 should select the second segment, got %q", result.Segment.Label)
	}
}

func TestSpinDriftFallsBackToLastSegment(t *testing.T) {
	resolver := testResolver(t, `[
		{"id": "wheel", "name": "Wheel", "segments": [
			{"label": "first", "weight": 1},
			{"label": "last", "weight": 1}
		]}
	]`)
	// A draw outside [0,1) only happens through floating-point drift; the
	// engine must still terminate deterministically on the last segment.
	engine := NewEngine(resolver, fixedSource{v: 1.0000001})

	result, err := engine.Spin("wheel")
	if err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	if result.Segment.Label != "last" {
		t.Fatalf("drift fallback should select the last segment, got %q", result.Segment.Label)
	}
}

func TestSpinFailures(t *testing.T) {
	resolver := testResolver(t, `[
		{"id": "empty", "name": "Empty", "segments": []},
		{"id": "off", "name": "Off", "active": false, "segments": [{"label": "x", "weight": 1}]}
	]`)
	engine := NewEngine(resolver, nil)

	if _, err := engine.Spin("ghost"); !errors.Is(err, ErrUnknownRoulette) {
		t.Fatalf("expected ErrUnknownRoulette, got %v", err)
	}
	if _, err := engine.Spin("off"); !errors.Is(err, ErrInactiveRoulette) {
		t.Fatalf("expected ErrInactiveRoulette, got %v", err)
	}
	if _, err := engine.Spin("empty"); !errors.Is(err, ErrNoSegments) {
		t.Fatalf("expected ErrNoSegments, got %v", err)
	}
}

func TestSpinStampsCardProvenance(t *testing.T) {
	resolver := testResolver(t, `[
		{"id": "wheel", "name": "Wheel", "segments": [
			{"label": "Pikachu", "weight": 1, "cardId": "pikachu"}
		]}
	]`)
	engine := NewEngine(resolver, NewSeededSource(1))

	result, err := engine.Spin("wheel")
	if err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	if result.Card == nil {
		t.Fatalf("card segment should yield a card template")
	}
	if result.Card.ObtainedFrom != "wheel" {
		t.Fatalf("card should be stamped with the roulette id: %+v", result.Card)
	}
	if !result.Card.ObtainedAt.Equal(result.Timestamp) {
		t.Fatalf("card stamp should match the result timestamp")
	}
	if result.Tier != "" {
		t.Fatalf("card result must not carry a coin tier")
	}
}

func TestSpinCarriesTierNotAmount(t *testing.T) {
	resolver := testResolver(t, `[
		{"id": "wheel", "name": "Wheel", "segments": [
			{"label": "Coins", "weight": 1, "coins": "huge"}
		]}
	]`)
	engine := NewEngine(resolver, NewSeededSource(1))

	result, err := engine.Spin("wheel")
	if err != nil {
		t.Fatalf("spin failed: %v", err)
	}
	if result.Tier != "huge" {
		t.Fatalf("coin reward should stay a tier token: %+v", result)
	}
	if result.Card != nil {
		t.Fatalf("coin result must not carry a card")
	}
}

func TestSpinPendingGuard(t *testing.T) {
	resolver := testResolver(t, `[
		{"id": "a", "name": "A", "segments": [{"label": "x", "weight": 1}]},
		{"id": "b", "name": "B", "segments": [{"label": "y", "weight": 1}]}
	]`)
	engine := NewEngine(resolver, NewSeededSource(1))

	if _, err := engine.Spin("a"); err != nil {
		t.Fatalf("first spin failed: %v", err)
	}
	if _, err := engine.Spin("a"); !errors.Is(err, ErrSpinPending) {
		t.Fatalf("second spin should be rejected while unsettled, got %v", err)
	}

	// Other roulettes are unaffected.
	if _, err := engine.Spin("b"); err != nil {
		t.Fatalf("spin of a different roulette failed: %v", err)
	}

	engine.Resolve("a")
	if _, err := engine.Spin("a"); err != nil {
		t.Fatalf("spin after settlement failed: %v", err)
	}
}
