package games

import (
	"math/rand"
	"testing"
)

// gridFromRows builds a [column][row] grid from row-major symbol rows.
func gridFromRows(rows [3][5]string) [][]string {
	grid := make([][]string, slotColumns)
	for col := 0; col < slotColumns; col++ {
		grid[col] = make([]string, slotRows)
		for row := 0; row < slotRows; row++ {
			grid[col][row] = rows[row][col]
		}
	}
	return grid
}

func TestSpinGridShape(t *testing.T) {
	cfg, err := NewCatalog().Config(Slots)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	rng := rand.New(rand.NewSource(1))

	grid := SpinGrid(cfg, rng)
	if len(grid) != 5 {
		t.Fatalf("grid has %d columns, want 5", len(grid))
	}
	for col := range grid {
		if len(grid[col]) != 3 {
			t.Fatalf("column %d has %d rows, want 3", col, len(grid[col]))
		}
		for row, sym := range grid[col] {
			if _, ok := cfg.SymbolWeights[sym]; !ok {
				t.Errorf("cell [%d][%d] holds unknown symbol %q", col, row, sym)
			}
		}
	}
}

func TestBestLineFullRun(t *testing.T) {
	cfg, err := NewCatalog().Config(Slots)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}

	grid := gridFromRows([3][5]string{
		{"🍒", "🍋", "🍊", "🍋", "🍒"},
		{"💎", "💎", "💎", "💎", "💎"},
		{"🍉", "🍒", "🍋", "🍊", "🍉"},
	})
	best := BestLine(cfg, grid)
	if best == nil {
		t.Fatal("full diamond row must pay")
	}
	if best.Symbol != "💎" || best.Run != 5 || best.Multiplier != 250 {
		t.Errorf("best = %+v, want 💎 run 5 at 250x", best)
	}

	win, _ := SettleSlots(cfg, 10, grid)
	if win != 2500 {
		t.Errorf("win = %d, want 2500", win)
	}
}

func TestBestLinePicksHighestOnly(t *testing.T) {
	cfg, err := NewCatalog().Config(Slots)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}

	// Top row pays 2x for three cherries, middle row 10x for three stars.
	// Only the star line may pay; line wins are never summed.
	grid := gridFromRows([3][5]string{
		{"🍒", "🍒", "🍒", "🍋", "🍊"},
		{"⭐", "⭐", "⭐", "🍋", "🍒"},
		{"🍉", "🍒", "🍋", "🍊", "🍉"},
	})
	best := BestLine(cfg, grid)
	if best == nil {
		t.Fatal("expected a winning line")
	}
	if best.Symbol != "⭐" || best.Multiplier != 10 {
		t.Errorf("best = %+v, want the 10x star line", best)
	}

	win, _ := SettleSlots(cfg, 50, grid)
	if win != 500 {
		t.Errorf("win = %d, want 500 (never the 2x line added on top)", win)
	}
}

func TestLineRunMustStartAtFirstColumn(t *testing.T) {
	cfg, err := NewCatalog().Config(Slots)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}

	// Four lemons in the middle row, but the run starts at column 1.
	grid := gridFromRows([3][5]string{
		{"🍒", "🍊", "🍒", "🍊", "🍒"},
		{"🍉", "🍋", "🍋", "🍋", "🍋"},
		{"🍊", "🍒", "🍊", "🍒", "🍊"},
	})
	if best := BestLine(cfg, grid); best != nil {
		t.Errorf("run not anchored at column 0 must not pay, got %+v", best)
	}

	win, line := SettleSlots(cfg, 100, grid)
	if win != 0 || line != nil {
		t.Errorf("SettleSlots = %d/%+v, want 0/nil", win, line)
	}
}

func TestBestLineShortRun(t *testing.T) {
	cfg, err := NewCatalog().Config(Slots)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}

	grid := gridFromRows([3][5]string{
		{"🍒", "🍊", "🍒", "🍊", "🍒"},
		{"🍉", "🍉", "🍉", "🍋", "🍋"},
		{"🍊", "🍒", "🍊", "🍒", "🍊"},
	})
	best := BestLine(cfg, grid)
	if best == nil {
		t.Fatal("three melons must pay")
	}
	if best.Run != 3 || best.Multiplier != 5 {
		t.Errorf("best = %+v, want run 3 at 5x", best)
	}

	// The win is attributed to the 3-run, not the full row.
	win, _ := SettleSlots(cfg, 50, grid)
	if win != 250 {
		t.Errorf("win = %d, want 250", win)
	}
}

func TestVShapedPayline(t *testing.T) {
	cfg, err := NewCatalog().Config(Slots)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}

	// Stars along the V: rows 0,1,2,1,0.
	grid := gridFromRows([3][5]string{
		{"⭐", "🍊", "🍒", "🍊", "⭐"},
		{"🍉", "⭐", "🍋", "⭐", "🍋"},
		{"🍊", "🍒", "⭐", "🍒", "🍊"},
	})
	best := BestLine(cfg, grid)
	if best == nil {
		t.Fatal("the V payline must pay")
	}
	if best.Symbol != "⭐" || best.Run != 5 || best.Multiplier != 60 {
		t.Errorf("best = %+v, want ⭐ run 5 at 60x", best)
	}
}
