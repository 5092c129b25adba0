package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BetsPlaced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_bets_placed_total",
		Help: "Stakes debited, by game variant.",
	}, []string{"variant"})

	RoundsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_rounds_settled_total",
		Help: "Rounds settled, by game variant and result.",
	}, []string{"variant", "result"})

	DepositsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casino_deposits_confirmed_total",
		Help: "Deposit confirmations applied (duplicates excluded).",
	})

	WithdrawalsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_withdrawals_settled_total",
		Help: "Withdrawals reaching a terminal status.",
	}, []string{"status"})
)
