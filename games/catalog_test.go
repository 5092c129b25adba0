package games

import (
	"testing"
)

func TestValidateBet(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		name    string
		variant Variant
		amount  int64
		wantErr bool
	}{
		{"blackjack minimum", Blackjack, 10, false},
		{"blackjack maximum", Blackjack, 10000, false},
		{"blackjack below minimum", Blackjack, 9, true},
		{"blackjack above maximum", Blackjack, 10001, true},
		{"zero bet", Roulette, 0, true},
		{"negative bet", Slots, -5, true},
		{"slots minimum", Slots, 5, false},
		{"poker maximum", Poker, 5000, false},
		{"unknown variant", Variant("craps"), 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := catalog.ValidateBet(tt.variant, tt.amount)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBet(%s, %d) error = %v, wantErr %v", tt.variant, tt.amount, err, tt.wantErr)
			}
		})
	}
}

func TestConfigUnknownVariant(t *testing.T) {
	if _, err := NewCatalog().Config(Variant("craps")); err != ErrUnknownVariant {
		t.Errorf("Config(craps) error = %v, want ErrUnknownVariant", err)
	}
}

func TestConfigReturnsIndependentCopy(t *testing.T) {
	catalog := NewCatalog()

	cfg, err := catalog.Config(Slots)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	cfg.SymbolWeights["💎"] = 1000
	cfg.Paytable["💎"][5] = 1
	cfg.Paylines[0][0] = 99
	cfg.MaxBet = 1

	fresh, err := catalog.Config(Slots)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	if fresh.SymbolWeights["💎"] != 3 {
		t.Error("mutating a copy's weights leaked into the catalog")
	}
	if fresh.Paytable["💎"][5] != 250 {
		t.Error("mutating a copy's paytable leaked into the catalog")
	}
	if fresh.Paylines[0][0] != 1 {
		t.Error("mutating a copy's paylines leaked into the catalog")
	}
	if fresh.MaxBet != 2000 {
		t.Error("mutating a copy's limits leaked into the catalog")
	}

	pcfg, err := catalog.Config(Poker)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	pcfg.BonusTable[StraightFlush] = 99
	if fresh, _ := catalog.Config(Poker); fresh.BonusTable[StraightFlush] != 5 {
		t.Error("mutating a copy's bonus table leaked into the catalog")
	}

	rcfg, err := catalog.Config(Roulette)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	rcfg.RoulettePayouts[BetStraight] = 1
	if fresh, _ := catalog.Config(Roulette); fresh.RoulettePayouts[BetStraight] != 36 {
		t.Error("mutating a copy's payout table leaked into the catalog")
	}
}

func TestOutcome(t *testing.T) {
	if got := Outcome(100, 250); got != "win" {
		t.Errorf("Outcome(100, 250) = %s, want win", got)
	}
	if got := Outcome(100, 100); got != "tie" {
		t.Errorf("Outcome(100, 100) = %s, want tie", got)
	}
	if got := Outcome(100, 0); got != "loss" {
		t.Errorf("Outcome(100, 0) = %s, want loss", got)
	}
}
