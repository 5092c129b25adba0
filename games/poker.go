package games

import (
	"math/rand"
	"sort"
)

// Three-card poker round stages.
const (
	StageWaitingAnte     = "waiting_ante"
	StageWaitingDecision = "waiting_decision"
	StagePlayed          = "played"
	StageFolded          = "folded"
)

// HandRank orders three-card hands from weakest to strongest.
type HandRank int

const (
	HighCard HandRank = iota
	Pair
	Flush
	Straight
	ThreeOfAKind
	StraightFlush
)

var handRankNames = map[HandRank]string{
	HighCard:      "high card",
	Pair:          "pair",
	Flush:         "flush",
	Straight:      "straight",
	ThreeOfAKind:  "three of a kind",
	StraightFlush: "straight flush",
}

func (r HandRank) String() string { return handRankNames[r] }

// PokerState carries the raw dealt cards between the ante and the
// play/fold decision. Dealer cards stay empty until play.
type PokerState struct {
	Player []Card `json:"player"`
	Dealer []Card `json:"dealer,omitempty"`
}

// PokerOutcome is the terminal settlement of a poker round. Payout is the
// total credit including returned stakes; Bonus is the ante-bonus portion
// already included in Payout.
type PokerOutcome struct {
	Result          string `json:"result"`
	Payout          int64  `json:"payout"`
	Bonus           int64  `json:"bonus"`
	DealerQualified bool   `json:"dealer_qualified"`
	PlayerRank      string `json:"player_rank"`
	DealerRank      string `json:"dealer_rank"`
}

// EvaluateHand ranks a three-card hand and returns the rank plus the
// tie-break values, highest significance first: for a pair the paired
// value precedes the kicker, otherwise the values sort descending. The
// ace-low straight A-2-3 is valid and compares as 3-high.
func EvaluateHand(cards []Card) (HandRank, []int) {
	values := make([]int, len(cards))
	for i, card := range cards {
		values[i] = rankValue(card.Rank)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	flush := cards[0].Suit == cards[1].Suit && cards[0].Suit == cards[2].Suit
	straight := values[0] == values[1]+1 && values[1] == values[2]+1
	if !straight && values[0] == 14 && values[1] == 3 && values[2] == 2 {
		straight = true
		values = []int{3, 2, 1} // ace plays low
	}
	trips := values[0] == values[1] && values[1] == values[2]
	pair := !trips && (values[0] == values[1] || values[1] == values[2])
	if pair && values[1] == values[2] {
		// The paired value compares before the kicker.
		values = []int{values[1], values[2], values[0]}
	}

	switch {
	case straight && flush:
		return StraightFlush, values
	case trips:
		return ThreeOfAKind, values
	case straight:
		return Straight, values
	case flush:
		return Flush, values
	case pair:
		return Pair, values
	default:
		return HighCard, values
	}
}

// CompareHands returns >0 when a beats b, <0 when b beats a, 0 on an
// exact tie. Same-rank ties compare the tie-break values positionally,
// never suits.
func CompareHands(a, b []Card) int {
	rankA, valsA := EvaluateHand(a)
	rankB, valsB := EvaluateHand(b)
	if rankA != rankB {
		return int(rankA) - int(rankB)
	}
	for i := range valsA {
		if valsA[i] != valsB[i] {
			return valsA[i] - valsB[i]
		}
	}
	return 0
}

// DealerQualifies reports whether the dealer holds queen-high or better.
func DealerQualifies(cards []Card) bool {
	rank, vals := EvaluateHand(cards)
	return rank > HighCard || vals[0] >= rankValue("Q")
}

// DealPokerHand deals the three player cards for the ante step.
func DealPokerHand(rng *rand.Rand) PokerState {
	return PokerState{Player: DrawN(rng, 3)}
}

// SettlePoker resolves a played round. The ante bonus applies to the
// player's hand rank regardless of qualification or the head-to-head
// outcome; the ante and play bets resolve per the qualification rules.
// Total staked at this point is 2*ante (ante plus the matching play bet).
func SettlePoker(cfg *Config, ante int64, state PokerState) PokerOutcome {
	playerRank, _ := EvaluateHand(state.Player)
	dealerRank, _ := EvaluateHand(state.Dealer)

	out := PokerOutcome{
		PlayerRank:      playerRank.String(),
		DealerRank:      dealerRank.String(),
		DealerQualified: DealerQualifies(state.Dealer),
	}
	if mult, ok := cfg.BonusTable[playerRank]; ok {
		out.Bonus = ante * mult
	}

	var stakes int64
	switch {
	case !out.DealerQualified:
		// Ante and play both returned at 1x: net zero on those bets.
		stakes = 2 * ante
	default:
		cmp := CompareHands(state.Player, state.Dealer)
		switch {
		case cmp > 0:
			stakes = 4 * ante // both bets pay 1x on top of the returned stakes
		case cmp == 0:
			stakes = 2 * ante
		default:
			stakes = 0
		}
	}
	out.Payout = stakes + out.Bonus
	out.Result = Outcome(2*ante, out.Payout)
	return out
}
