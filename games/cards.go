package games

import (
	"math/rand"
)

// Card is one playing card. Rank and Suit are the raw values dealt by the
// server; every score is recomputed from them, derived totals are never
// stored or trusted.
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

var (
	ranks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	suits = []string{"♠", "♥", "♦", "♣"}
)

// Draw deals one card from an infinite shoe (draws with replacement).
func Draw(rng *rand.Rand) Card {
	return Card{
		Rank: ranks[rng.Intn(len(ranks))],
		Suit: suits[rng.Intn(len(suits))],
	}
}

// DrawN deals n cards with replacement.
func DrawN(rng *rand.Rand, n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = Draw(rng)
	}
	return cards
}

// rankValue maps a rank to its poker comparison value (2..14, ace high).
func rankValue(rank string) int {
	switch rank {
	case "J":
		return 11
	case "Q":
		return 12
	case "K":
		return 13
	case "A":
		return 14
	case "10":
		return 10
	default:
		return int(rank[0] - '0')
	}
}

// Outcome classifies a settled round by comparing the total credited
// against the total staked.
func Outcome(staked, credited int64) string {
	switch {
	case credited > staked:
		return "win"
	case credited == staked:
		return "tie"
	default:
		return "loss"
	}
}
