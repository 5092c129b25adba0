package games

import (
	"errors"
	"fmt"
	"math/rand"
)

// RouletteBetType names the supported bet predicates.
type RouletteBetType string

const (
	BetStraight RouletteBetType = "straight"
	BetRed      RouletteBetType = "red"
	BetBlack    RouletteBetType = "black"
	BetOdd      RouletteBetType = "odd"
	BetEven     RouletteBetType = "even"
	BetLow      RouletteBetType = "low"
	BetHigh     RouletteBetType = "high"
	BetDozen    RouletteBetType = "dozen"
	BetColumn   RouletteBetType = "column"
)

// RouletteBet is one of the simultaneous bets of a spin. Value carries
// the number for straight bets and the 1..3 index for dozens/columns.
type RouletteBet struct {
	Type   RouletteBetType `json:"type"`
	Value  int             `json:"value,omitempty"`
	Amount int64           `json:"amount"`
}

// RouletteBetResult reports one bet's evaluation against the outcome.
type RouletteBetResult struct {
	Bet RouletteBet `json:"bet"`
	Won bool        `json:"won"`
	Win int64       `json:"win"`
}

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// ValidateRouletteBets checks each bet's shape; stake limits are checked
// against the summed total by the caller.
func ValidateRouletteBets(cfg *Config, bets []RouletteBet) (total int64, err error) {
	if len(bets) == 0 {
		return 0, errors.New("at least one bet is required")
	}
	for _, bet := range bets {
		if _, ok := cfg.RoulettePayouts[bet.Type]; !ok {
			return 0, fmt.Errorf("unknown bet type %q", bet.Type)
		}
		if bet.Amount <= 0 {
			return 0, errors.New("bet amount must be a positive number")
		}
		switch bet.Type {
		case BetStraight:
			if bet.Value < 0 || bet.Value > 36 {
				return 0, fmt.Errorf("straight bet number %d is outside 0..36", bet.Value)
			}
		case BetDozen, BetColumn:
			if bet.Value < 1 || bet.Value > 3 {
				return 0, fmt.Errorf("%s bet index %d is outside 1..3", bet.Type, bet.Value)
			}
		}
		total += bet.Amount
	}
	return total, nil
}

// Spin draws one outcome uniformly from 0..36.
func Spin(rng *rand.Rand) int {
	return rng.Intn(37)
}

// BetWins evaluates one bet's predicate against the wheel outcome. Zero
// wins nothing but straight-zero bets.
func BetWins(bet RouletteBet, n int) bool {
	switch bet.Type {
	case BetStraight:
		return n == bet.Value
	case BetRed:
		return redNumbers[n]
	case BetBlack:
		return n != 0 && !redNumbers[n]
	case BetOdd:
		return n != 0 && n%2 == 1
	case BetEven:
		return n != 0 && n%2 == 0
	case BetLow:
		return n >= 1 && n <= 18
	case BetHigh:
		return n >= 19 && n <= 36
	case BetDozen:
		return n != 0 && (n-1)/12+1 == bet.Value
	case BetColumn:
		if n == 0 {
			return false
		}
		col := n % 3
		if col == 0 {
			col = 3
		}
		return col == bet.Value
	default:
		return false
	}
}

// SettleRoulette evaluates every bet independently against the outcome
// and sums the winnings. Multipliers are total return per unit staked.
func SettleRoulette(cfg *Config, bets []RouletteBet, n int) (win int64, results []RouletteBetResult) {
	results = make([]RouletteBetResult, 0, len(bets))
	for _, bet := range bets {
		res := RouletteBetResult{Bet: bet}
		if BetWins(bet, n) {
			res.Won = true
			res.Win = bet.Amount * cfg.RoulettePayouts[bet.Type]
			win += res.Win
		}
		results = append(results, res)
	}
	return win, results
}
