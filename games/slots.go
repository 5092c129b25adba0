package games

import (
	"math/rand"
	"sort"
)

const (
	slotColumns = 5
	slotRows    = 3
)

// SlotLineWin describes the single best-paying line of a spin.
type SlotLineWin struct {
	Line       int    `json:"line"`
	Symbol     string `json:"symbol"`
	Run        int    `json:"run"`
	Multiplier int64  `json:"multiplier"`
}

// SpinGrid draws the 5x3 grid, each cell independently from the weighted
// symbol distribution. The grid is indexed [column][row].
func SpinGrid(cfg *Config, rng *rand.Rand) [][]string {
	symbols := make([]string, 0, len(cfg.SymbolWeights))
	for sym := range cfg.SymbolWeights {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols) // stable draw order regardless of map iteration

	totalWeight := 0
	for _, sym := range symbols {
		totalWeight += cfg.SymbolWeights[sym]
	}

	grid := make([][]string, slotColumns)
	for col := range grid {
		grid[col] = make([]string, slotRows)
		for row := range grid[col] {
			grid[col][row] = drawSymbol(cfg, symbols, totalWeight, rng)
		}
	}
	return grid
}

func drawSymbol(cfg *Config, symbols []string, totalWeight int, rng *rand.Rand) string {
	pick := rng.Intn(totalWeight)
	for _, sym := range symbols {
		pick -= cfg.SymbolWeights[sym]
		if pick < 0 {
			return sym
		}
	}
	return symbols[len(symbols)-1]
}

// lineRun counts the matching-symbol run starting at column 0 of a
// payline. Runs that do not start at the first column pay nothing.
func lineRun(grid [][]string, line []int) (symbol string, run int) {
	symbol = grid[0][line[0]]
	run = 1
	for col := 1; col < slotColumns; col++ {
		if grid[col][line[col]] != symbol {
			break
		}
		run++
	}
	return symbol, run
}

// BestLine evaluates all paylines and returns only the single
// highest-paying one; line payouts are never summed. Returns nil when no
// line reaches a paying run.
func BestLine(cfg *Config, grid [][]string) *SlotLineWin {
	var best *SlotLineWin
	for i, line := range cfg.Paylines {
		symbol, run := lineRun(grid, line)
		if run < 3 {
			continue
		}
		mult, ok := cfg.Paytable[symbol][run]
		if !ok {
			continue
		}
		if best == nil || mult > best.Multiplier {
			best = &SlotLineWin{Line: i, Symbol: symbol, Run: run, Multiplier: mult}
		}
	}
	return best
}

// SettleSlots computes the spin's credit: bet times the best line's
// multiplier, or zero.
func SettleSlots(cfg *Config, bet int64, grid [][]string) (int64, *SlotLineWin) {
	best := BestLine(cfg, grid)
	if best == nil {
		return 0, nil
	}
	return bet * best.Multiplier, best
}
