package games

import (
	"math/rand"
	"testing"
)

func card(rank, suit string) Card {
	return Card{Rank: rank, Suit: suit}
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		cards []Card
		want  int
	}{
		{"two aces and nine", []Card{card("A", "♠"), card("A", "♥"), card("9", "♦")}, 21},
		{"ace reduces after face cards", []Card{card("K", "♠"), card("Q", "♥"), card("A", "♦")}, 21},
		{"ace stays eleven", []Card{card("A", "♠"), card("7", "♥")}, 18},
		{"all faces bust", []Card{card("K", "♠"), card("Q", "♥"), card("J", "♦")}, 30},
		{"ten spot", []Card{card("10", "♠"), card("9", "♥")}, 19},
		{"four aces", []Card{card("A", "♠"), card("A", "♥"), card("A", "♦"), card("A", "♣")}, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HandValue(tt.cards); got != tt.want {
				t.Errorf("HandValue() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsNatural(t *testing.T) {
	if !IsNatural([]Card{card("A", "♠"), card("K", "♥")}) {
		t.Error("ace plus king should be a natural")
	}
	if IsNatural([]Card{card("7", "♠"), card("7", "♥"), card("7", "♦")}) {
		t.Error("three-card 21 is not a natural")
	}
	if IsNatural([]Card{card("10", "♠"), card("9", "♥")}) {
		t.Error("19 is not a natural")
	}
}

func TestSettleNaturals(t *testing.T) {
	cfg, err := NewCatalog().Config(Blackjack)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}

	natural := []Card{card("A", "♠"), card("K", "♥")}
	plain := []Card{card("5", "♠"), card("5", "♥")}

	out := SettleNaturals(cfg, 100, BlackjackState{Player: natural, Dealer: plain})
	if out == nil {
		t.Fatal("player natural should settle immediately")
	}
	if out.Result != "win" || out.Payout != 250 {
		t.Errorf("player natural = %s/%d, want win/250", out.Result, out.Payout)
	}
	if !out.Blackjack {
		t.Error("outcome should flag the blackjack")
	}

	out = SettleNaturals(cfg, 100, BlackjackState{Player: natural, Dealer: []Card{card("A", "♦"), card("Q", "♣")}})
	if out == nil || out.Result != "tie" || out.Payout != 100 {
		t.Errorf("both naturals = %+v, want tie with the stake returned", out)
	}

	out = SettleNaturals(cfg, 100, BlackjackState{Player: plain, Dealer: natural})
	if out == nil || out.Result != "loss" || out.Payout != 0 {
		t.Errorf("dealer natural = %+v, want loss/0", out)
	}

	if out := SettleNaturals(cfg, 100, BlackjackState{Player: plain, Dealer: plain}); out != nil {
		t.Errorf("no naturals should continue the round, got %+v", out)
	}
}

func TestHit(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		state := BlackjackState{
			Player: DrawN(rng, 2),
			Dealer: DrawN(rng, 2),
		}
		before := len(state.Player)
		out := Hit(rng, &state)
		if len(state.Player) != before+1 {
			t.Fatalf("Hit should add exactly one card, got %d", len(state.Player))
		}
		total := HandValue(state.Player)
		if total > 21 {
			if out == nil {
				t.Fatalf("bust at %d should settle", total)
			}
			if out.Result != "loss" || out.Payout != 0 {
				t.Fatalf("bust = %s/%d, want loss/0", out.Result, out.Payout)
			}
		} else if out != nil {
			t.Fatalf("total %d should continue, got %+v", total, out)
		}
	}
}

func TestStand(t *testing.T) {
	cfg, err := NewCatalog().Config(Blackjack)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	rng := rand.New(rand.NewSource(1))

	// Dealer already on 17: no draw, player 19 wins at 2x total return.
	state := BlackjackState{
		Player: []Card{card("10", "♠"), card("9", "♥")},
		Dealer: []Card{card("10", "♦"), card("7", "♣")},
	}
	out := Stand(cfg, rng, 100, &state)
	if len(state.Dealer) != 2 {
		t.Errorf("dealer must stand on 17, drew to %d cards", len(state.Dealer))
	}
	if out.Result != "win" || out.Payout != 200 {
		t.Errorf("19 vs 17 = %s/%d, want win/200", out.Result, out.Payout)
	}

	state = BlackjackState{
		Player: []Card{card("10", "♠"), card("7", "♥")},
		Dealer: []Card{card("9", "♦"), card("8", "♣")},
	}
	out = Stand(cfg, rng, 100, &state)
	if out.Result != "tie" || out.Payout != 100 {
		t.Errorf("17 vs 17 = %s/%d, want tie/100", out.Result, out.Payout)
	}

	state = BlackjackState{
		Player: []Card{card("9", "♠"), card("7", "♥")},
		Dealer: []Card{card("10", "♦"), card("8", "♣")},
	}
	out = Stand(cfg, rng, 100, &state)
	if out.Result != "loss" || out.Payout != 0 {
		t.Errorf("16 vs 18 = %s/%d, want loss/0", out.Result, out.Payout)
	}

	// Dealer under 17 must draw to 17 or beyond.
	for i := 0; i < 100; i++ {
		state = BlackjackState{
			Player: []Card{card("10", "♠"), card("9", "♥")},
			Dealer: []Card{card("2", "♦"), card("3", "♣")},
		}
		out = Stand(cfg, rng, 100, &state)
		if HandValue(state.Dealer) < 17 {
			t.Fatalf("dealer stopped under 17 at %d", HandValue(state.Dealer))
		}
		if out.Dealer > 21 && out.Result != "win" {
			t.Fatalf("dealer bust should pay the player, got %s", out.Result)
		}
	}
}
