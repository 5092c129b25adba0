package games

import (
	"math/rand"
)

// Blackjack round stages.
const (
	StageDealt      = "dealt"
	StagePlayerTurn = "player_turn"
	StageDealerTurn = "dealer_turn"
	StageSettled    = "settled"
)

// BlackjackState is the raw state round-tripped through the round store
// between requests: only dealt cards, never totals.
type BlackjackState struct {
	Player []Card `json:"player"`
	Dealer []Card `json:"dealer"`
}

// BlackjackOutcome is a terminal settlement. Payout is the total credit
// returned to the player (stake included on wins and pushes).
type BlackjackOutcome struct {
	Result    string `json:"result"`
	Payout    int64  `json:"payout"`
	Player    int    `json:"player_total"`
	Dealer    int    `json:"dealer_total"`
	Blackjack bool   `json:"blackjack"`
}

// blackjackCardValue scores a single card: ace is 11 before reduction,
// face cards are 10.
func blackjackCardValue(card Card) int {
	switch card.Rank {
	case "A":
		return 11
	case "K", "Q", "J", "10":
		return 10
	default:
		return int(card.Rank[0] - '0')
	}
}

// HandValue computes a blackjack hand total, counting aces as 11 and
// reducing them to 1 one at a time while the hand busts.
func HandValue(cards []Card) int {
	total := 0
	aces := 0
	for _, card := range cards {
		v := blackjackCardValue(card)
		if v == 11 {
			aces++
		}
		total += v
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// IsNatural reports an ace plus ten-value card in exactly two cards.
func IsNatural(cards []Card) bool {
	return len(cards) == 2 && HandValue(cards) == 21
}

// DealBlackjack deals the opening two cards to player and dealer.
func DealBlackjack(rng *rand.Rand) BlackjackState {
	return BlackjackState{
		Player: DrawN(rng, 2),
		Dealer: DrawN(rng, 2),
	}
}

// SettleNaturals resolves the round immediately after the deal when
// either side holds a natural. Returns nil when the round continues.
func SettleNaturals(cfg *Config, bet int64, state BlackjackState) *BlackjackOutcome {
	playerNatural := IsNatural(state.Player)
	dealerNatural := IsNatural(state.Dealer)
	if !playerNatural && !dealerNatural {
		return nil
	}
	out := &BlackjackOutcome{
		Player:    HandValue(state.Player),
		Dealer:    HandValue(state.Dealer),
		Blackjack: playerNatural,
	}
	switch {
	case playerNatural && dealerNatural:
		out.Result = "tie"
		out.Payout = bet
	case playerNatural:
		out.Result = "win"
		out.Payout = bet * cfg.NaturalPayoutNum / cfg.PayoutDen
	default:
		out.Result = "loss"
		out.Payout = 0
	}
	return out
}

// Hit adds one card to the player's hand and settles as an immediate
// loss when the hand busts. Returns the outcome, or nil when the round
// continues.
func Hit(rng *rand.Rand, state *BlackjackState) *BlackjackOutcome {
	state.Player = append(state.Player, Draw(rng))
	total := HandValue(state.Player)
	if total <= 21 {
		return nil
	}
	return &BlackjackOutcome{
		Result: "loss",
		Payout: 0,
		Player: total,
		Dealer: HandValue(state.Dealer),
	}
}

// Stand plays out the dealer's hand (draws while under 17, stands on all
// 17s) and settles. A drawn 21 pays the standard win rate; only the
// two-card natural handled at the deal pays the natural rate.
func Stand(cfg *Config, rng *rand.Rand, bet int64, state *BlackjackState) BlackjackOutcome {
	for HandValue(state.Dealer) < 17 {
		state.Dealer = append(state.Dealer, Draw(rng))
	}
	player := HandValue(state.Player)
	dealer := HandValue(state.Dealer)

	out := BlackjackOutcome{Player: player, Dealer: dealer}
	switch {
	case player > 21:
		out.Result = "loss"
	case dealer > 21 || player > dealer:
		out.Result = "win"
		out.Payout = bet * cfg.WinPayoutNum / cfg.PayoutDen
	case player == dealer:
		out.Result = "tie"
		out.Payout = bet
	default:
		out.Result = "loss"
	}
	return out
}
