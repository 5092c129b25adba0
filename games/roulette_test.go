package games

import (
	"math/rand"
	"testing"
)

func TestBetWins(t *testing.T) {
	tests := []struct {
		name string
		bet  RouletteBet
		n    int
		want bool
	}{
		{"straight hit", RouletteBet{Type: BetStraight, Value: 17}, 17, true},
		{"straight miss", RouletteBet{Type: BetStraight, Value: 17}, 18, false},
		{"straight zero", RouletteBet{Type: BetStraight, Value: 0}, 0, true},
		{"seventeen is black", RouletteBet{Type: BetBlack}, 17, true},
		{"seventeen is not red", RouletteBet{Type: BetRed}, 17, false},
		{"one is red", RouletteBet{Type: BetRed}, 1, true},
		{"zero is not black", RouletteBet{Type: BetBlack}, 0, false},
		{"zero is not even", RouletteBet{Type: BetEven}, 0, false},
		{"zero is not low", RouletteBet{Type: BetLow}, 0, false},
		{"odd", RouletteBet{Type: BetOdd}, 17, true},
		{"even", RouletteBet{Type: BetEven}, 18, true},
		{"low edge", RouletteBet{Type: BetLow}, 18, true},
		{"high edge", RouletteBet{Type: BetHigh}, 19, true},
		{"second dozen", RouletteBet{Type: BetDozen, Value: 2}, 17, true},
		{"first dozen miss", RouletteBet{Type: BetDozen, Value: 1}, 17, false},
		{"second column", RouletteBet{Type: BetColumn, Value: 2}, 17, true},
		{"third column", RouletteBet{Type: BetColumn, Value: 3}, 36, true},
		{"column zero", RouletteBet{Type: BetColumn, Value: 1}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BetWins(tt.bet, tt.n); got != tt.want {
				t.Errorf("BetWins(%+v, %d) = %v, want %v", tt.bet, tt.n, got, tt.want)
			}
		})
	}
}

func TestSettleRoulette(t *testing.T) {
	cfg, err := NewCatalog().Config(Roulette)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}

	bets := []RouletteBet{
		{Type: BetRed, Amount: 100},
		{Type: BetBlack, Amount: 100},
		{Type: BetStraight, Value: 17, Amount: 10},
	}
	win, results := SettleRoulette(cfg, bets, 17)
	// Black returns 200, the straight returns 360, red loses.
	if win != 560 {
		t.Errorf("win = %d, want 560", win)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d entries, want 3", len(results))
	}
	if results[0].Won || results[0].Win != 0 {
		t.Errorf("red on 17 = %+v, want lost", results[0])
	}
	if !results[1].Won || results[1].Win != 200 {
		t.Errorf("black on 17 = %+v, want 200", results[1])
	}
	if !results[2].Won || results[2].Win != 360 {
		t.Errorf("straight 17 = %+v, want 360", results[2])
	}

	win, _ = SettleRoulette(cfg, bets[:2], 0)
	if win != 0 {
		t.Errorf("zero should sink both colors, won %d", win)
	}
}

func TestValidateRouletteBets(t *testing.T) {
	cfg, err := NewCatalog().Config(Roulette)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}

	if _, err := ValidateRouletteBets(cfg, nil); err == nil {
		t.Error("empty bet set must be rejected")
	}
	if _, err := ValidateRouletteBets(cfg, []RouletteBet{{Type: "corner", Amount: 10}}); err == nil {
		t.Error("unknown bet type must be rejected")
	}
	if _, err := ValidateRouletteBets(cfg, []RouletteBet{{Type: BetStraight, Value: 37, Amount: 10}}); err == nil {
		t.Error("straight number above 36 must be rejected")
	}
	if _, err := ValidateRouletteBets(cfg, []RouletteBet{{Type: BetDozen, Value: 0, Amount: 10}}); err == nil {
		t.Error("dozen index outside 1..3 must be rejected")
	}
	if _, err := ValidateRouletteBets(cfg, []RouletteBet{{Type: BetRed, Amount: 0}}); err == nil {
		t.Error("zero amount must be rejected")
	}

	total, err := ValidateRouletteBets(cfg, []RouletteBet{
		{Type: BetRed, Amount: 100},
		{Type: BetStraight, Value: 0, Amount: 50},
	})
	if err != nil {
		t.Fatalf("valid bets rejected: %v", err)
	}
	if total != 150 {
		t.Errorf("total = %d, want 150", total)
	}
}

func TestSpinRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		n := Spin(rng)
		if n < 0 || n > 36 {
			t.Fatalf("Spin() = %d, outside 0..36", n)
		}
	}
}
