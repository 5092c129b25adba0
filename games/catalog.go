package games

import (
	"errors"
	"fmt"
)

// Variant identifies a game variant in the catalog.
type Variant string

const (
	Blackjack Variant = "blackjack"
	Poker     Variant = "poker"
	Roulette  Variant = "roulette"
	Slots     Variant = "slots"
)

var ErrUnknownVariant = errors.New("unknown game variant")

// Config is the static, per-variant configuration: bet limits plus the
// payout tables the round engines consume. Only the fields relevant to a
// variant are populated.
type Config struct {
	Variant Variant
	MinBet  int64
	MaxBet  int64

	// blackjack: payout numerators over a denominator of 2, so a natural
	// (5/2 = 2.5x) stays in integer arithmetic.
	NaturalPayoutNum int64
	WinPayoutNum     int64
	PayoutDen        int64

	// poker: ante bonus multipliers per hand rank.
	BonusTable map[HandRank]int64

	// roulette: total-return multiplier per bet type.
	RoulettePayouts map[RouletteBetType]int64

	// slots: symbol weights, per-symbol run-length paytable, paylines as
	// row indexes per column.
	SymbolWeights map[string]int
	Paytable      map[string]map[int]int64
	Paylines      [][]int
}

// Catalog is the immutable set of variant configurations. Built once at
// startup and injected into whatever needs it; Config hands out deep
// copies so a caller can never corrupt the shared tables.
type Catalog struct {
	configs map[Variant]*Config
}

func NewCatalog() *Catalog {
	return &Catalog{
		configs: map[Variant]*Config{
			Blackjack: {
				Variant:          Blackjack,
				MinBet:           10,
				MaxBet:           10000,
				NaturalPayoutNum: 5, // 2.5x stake returned
				WinPayoutNum:     4, // 2x stake returned
				PayoutDen:        2,
			},
			Poker: {
				Variant: Poker,
				MinBet:  10,
				MaxBet:  5000,
				BonusTable: map[HandRank]int64{
					StraightFlush: 5,
					ThreeOfAKind:  4,
					Straight:      1,
				},
			},
			Roulette: {
				Variant: Roulette,
				MinBet:  10,
				MaxBet:  20000,
				RoulettePayouts: map[RouletteBetType]int64{
					BetStraight: 36,
					BetDozen:    3,
					BetColumn:   3,
					BetRed:      2,
					BetBlack:    2,
					BetOdd:      2,
					BetEven:     2,
					BetLow:      2,
					BetHigh:     2,
				},
			},
			Slots: {
				Variant: Slots,
				MinBet:  5,
				MaxBet:  2000,
				SymbolWeights: map[string]int{
					"🍒": 30,
					"🍋": 25,
					"🍊": 20,
					"🍉": 15,
					"⭐": 7,
					"💎": 3,
				},
				Paytable: map[string]map[int]int64{
					"🍒": {3: 2, 4: 4, 5: 10},
					"🍋": {3: 3, 4: 6, 5: 15},
					"🍊": {3: 4, 4: 8, 5: 20},
					"🍉": {3: 5, 4: 12, 5: 30},
					"⭐": {3: 10, 4: 25, 5: 60},
					"💎": {3: 25, 4: 80, 5: 250},
				},
				Paylines: [][]int{
					{1, 1, 1, 1, 1}, // middle row
					{0, 0, 0, 0, 0}, // top row
					{2, 2, 2, 2, 2}, // bottom row
					{0, 1, 2, 1, 0}, // V through the middle
					{2, 1, 0, 1, 2}, // inverted V
				},
			},
		},
	}
}

// Config returns a deep copy of the variant's configuration.
func (c *Catalog) Config(v Variant) (*Config, error) {
	cfg, ok := c.configs[v]
	if !ok {
		return nil, ErrUnknownVariant
	}
	cp := *cfg
	if cfg.BonusTable != nil {
		cp.BonusTable = make(map[HandRank]int64, len(cfg.BonusTable))
		for k, val := range cfg.BonusTable {
			cp.BonusTable[k] = val
		}
	}
	if cfg.RoulettePayouts != nil {
		cp.RoulettePayouts = make(map[RouletteBetType]int64, len(cfg.RoulettePayouts))
		for k, val := range cfg.RoulettePayouts {
			cp.RoulettePayouts[k] = val
		}
	}
	if cfg.SymbolWeights != nil {
		cp.SymbolWeights = make(map[string]int, len(cfg.SymbolWeights))
		for k, val := range cfg.SymbolWeights {
			cp.SymbolWeights[k] = val
		}
	}
	if cfg.Paytable != nil {
		cp.Paytable = make(map[string]map[int]int64, len(cfg.Paytable))
		for sym, table := range cfg.Paytable {
			inner := make(map[int]int64, len(table))
			for run, mult := range table {
				inner[run] = mult
			}
			cp.Paytable[sym] = inner
		}
	}
	if cfg.Paylines != nil {
		cp.Paylines = make([][]int, len(cfg.Paylines))
		for i, line := range cfg.Paylines {
			cp.Paylines[i] = append([]int(nil), line...)
		}
	}
	return &cp, nil
}

// Variants lists the catalog's variants.
func (c *Catalog) Variants() []Variant {
	return []Variant{Blackjack, Poker, Roulette, Slots}
}

// ValidateBet checks a wager against the variant's limits and returns a
// descriptive error when it is not playable.
func (c *Catalog) ValidateBet(v Variant, amount int64) error {
	cfg, ok := c.configs[v]
	if !ok {
		return ErrUnknownVariant
	}
	if amount <= 0 {
		return errors.New("bet amount must be a positive number")
	}
	if amount < cfg.MinBet {
		return fmt.Errorf("bet amount is below the minimum of %d fichas", cfg.MinBet)
	}
	if amount > cfg.MaxBet {
		return fmt.Errorf("bet amount is above the maximum of %d fichas", cfg.MaxBet)
	}
	return nil
}
