package controllers

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DanielXT1021S/Nimetsu-casino-sub000/games"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/ledger"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/metrics"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/models"
)

// CasinoController orchestrates the round engines: it validates wagers
// against the catalog, drives the per-user exclusion window around every
// settlement, and writes exactly one history record per settled round.
type CasinoController struct {
	DB      *gorm.DB
	Ledger  *ledger.Service
	Catalog *games.Catalog
}

// BetRequest starts a single-stake round (blackjack, poker ante, slots).
type BetRequest struct {
	Bet int64 `json:"bet" binding:"required,gt=0"`
}

// RouletteSpinRequest carries the simultaneous bets of one spin.
type RouletteSpinRequest struct {
	Bets []games.RouletteBet `json:"bets" binding:"required"`
}

func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// respondGameError maps core errors onto the HTTP surface.
func respondGameError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrNoBalance):
		status = http.StatusNotFound
	case errors.Is(err, games.ErrUnknownVariant):
		status = http.StatusNotFound
	}
	c.JSON(status, Response{
		Success: false,
		Message: err.Error(),
	})
}

// activeUser loads the caller and refuses banned accounts.
func (cc *CasinoController) activeUser(c *gin.Context) (*models.User, bool) {
	userID := c.GetUint("user_id")

	var user models.User
	if err := cc.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "User not found",
		})
		return nil, false
	}
	if user.Status == "banned" {
		c.JSON(http.StatusForbidden, Response{
			Success: false,
			Message: "Account is banned",
		})
		return nil, false
	}
	return &user, true
}

// writeHistory appends the round's settled record inside tx.
func writeHistory(tx *gorm.DB, userID uint, variant games.Variant, bet, win int64, result string, detail interface{}) error {
	blob, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	return tx.Create(&models.GameHistory{
		UserID:  userID,
		Variant: string(variant),
		Bet:     bet,
		Win:     win,
		Result:  result,
		Detail:  string(blob),
	}).Error
}

// loadRound fetches the caller's active round of the given variant.
func (cc *CasinoController) loadRound(c *gin.Context, variant games.Variant) (*models.GameRound, bool) {
	userID := c.GetUint("user_id")
	roundID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid round id",
		})
		return nil, false
	}

	var round models.GameRound
	if err := cc.DB.First(&round, roundID).Error; err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "Round not found",
		})
		return nil, false
	}
	if round.UserID != userID {
		c.JSON(http.StatusForbidden, Response{
			Success: false,
			Message: "Access denied",
		})
		return nil, false
	}
	if round.Variant != string(variant) || round.Status != models.RoundActive {
		c.JSON(http.StatusConflict, Response{
			Success: false,
			Message: "Round is not active",
		})
		return nil, false
	}
	return &round, true
}

// ---------------------------------------------------------------------------
// Blackjack
// ---------------------------------------------------------------------------

// BlackjackDeal debits the stake, deals the opening hands and settles
// immediately when either side holds a natural.
func (cc *CasinoController) BlackjackDeal(c *gin.Context) {
	user, ok := cc.activeUser(c)
	if !ok {
		return
	}

	var req BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request data: " + err.Error(),
		})
		return
	}
	if err := cc.Catalog.ValidateBet(games.Blackjack, req.Bet); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	if !cc.Ledger.CanBet(user.ID, req.Bet) {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Insufficient balance for this bet",
		})
		return
	}

	cfg, err := cc.Catalog.Config(games.Blackjack)
	if err != nil {
		respondGameError(c, err)
		return
	}

	rng := newRNG()
	state := games.DealBlackjack(rng)
	outcome := games.SettleNaturals(cfg, req.Bet, state)

	stateBlob, err := json.Marshal(state)
	if err != nil {
		respondGameError(c, err)
		return
	}
	round := models.GameRound{
		UserID:  user.ID,
		Variant: string(games.Blackjack),
		Bet:     req.Bet,
		Stage:   games.StagePlayerTurn,
		State:   string(stateBlob),
		Status:  models.RoundActive,
	}
	if outcome != nil {
		round.Stage = games.StageSettled
		round.Status = models.RoundSettled
	}

	var balance int64
	err = cc.Ledger.Exclusive(user.ID, func(tx *gorm.DB) error {
		next, err := cc.Ledger.ApplyDelta(tx, user.ID, -req.Bet)
		if err != nil {
			return err
		}
		balance = next
		if err := tx.Create(&round).Error; err != nil {
			return err
		}
		if outcome == nil {
			return nil
		}
		if outcome.Payout > 0 {
			next, err = cc.Ledger.ApplyDelta(tx, user.ID, outcome.Payout)
			if err != nil {
				return err
			}
			balance = next
		}
		return writeHistory(tx, user.ID, games.Blackjack, req.Bet, outcome.Payout, outcome.Result, outcome)
	})
	if err != nil {
		respondGameError(c, err)
		return
	}

	metrics.BetsPlaced.WithLabelValues(string(games.Blackjack)).Inc()

	data := gin.H{
		"round_id":     round.ID,
		"bet":          round.Bet,
		"player":       state.Player,
		"player_total": games.HandValue(state.Player),
		"dealer_up":    state.Dealer[0],
		"balance":      balance,
	}
	if outcome != nil {
		metrics.RoundsSettled.WithLabelValues(string(games.Blackjack), outcome.Result).Inc()
		data["dealer"] = state.Dealer
		data["outcome"] = outcome
		c.JSON(http.StatusOK, Response{
			Success: true,
			Message: "Round settled on the deal",
			Data:    data,
		})
		return
	}
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: "Cards dealt",
		Data:    data,
	})
}

// BlackjackHit draws one card for the player; busting settles the round
// as an immediate loss.
func (cc *CasinoController) BlackjackHit(c *gin.Context) {
	round, ok := cc.loadRound(c, games.Blackjack)
	if !ok {
		return
	}

	var state games.BlackjackState
	if err := json.Unmarshal([]byte(round.State), &state); err != nil {
		respondGameError(c, err)
		return
	}

	outcome := games.Hit(newRNG(), &state)
	stateBlob, err := json.Marshal(state)
	if err != nil {
		respondGameError(c, err)
		return
	}
	round.State = string(stateBlob)

	if outcome == nil {
		if err := cc.DB.Save(round).Error; err != nil {
			respondGameError(c, err)
			return
		}
		c.JSON(http.StatusOK, Response{
			Success: true,
			Message: "Card drawn",
			Data: gin.H{
				"round_id":     round.ID,
				"player":       state.Player,
				"player_total": games.HandValue(state.Player),
				"dealer_up":    state.Dealer[0],
			},
		})
		return
	}

	round.Stage = games.StageSettled
	round.Status = models.RoundSettled
	err = cc.Ledger.Exclusive(round.UserID, func(tx *gorm.DB) error {
		if err := tx.Save(round).Error; err != nil {
			return err
		}
		return writeHistory(tx, round.UserID, games.Blackjack, round.Bet, 0, outcome.Result, outcome)
	})
	if err != nil {
		respondGameError(c, err)
		return
	}

	metrics.RoundsSettled.WithLabelValues(string(games.Blackjack), outcome.Result).Inc()
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Bust",
		Data: gin.H{
			"round_id": round.ID,
			"player":   state.Player,
			"dealer":   state.Dealer,
			"outcome":  outcome,
		},
	})
}

// BlackjackStand plays out the dealer's hand and settles the round.
func (cc *CasinoController) BlackjackStand(c *gin.Context) {
	round, ok := cc.loadRound(c, games.Blackjack)
	if !ok {
		return
	}

	var state games.BlackjackState
	if err := json.Unmarshal([]byte(round.State), &state); err != nil {
		respondGameError(c, err)
		return
	}

	cfg, err := cc.Catalog.Config(games.Blackjack)
	if err != nil {
		respondGameError(c, err)
		return
	}

	outcome := games.Stand(cfg, newRNG(), round.Bet, &state)
	stateBlob, err := json.Marshal(state)
	if err != nil {
		respondGameError(c, err)
		return
	}
	round.State = string(stateBlob)
	round.Stage = games.StageSettled
	round.Status = models.RoundSettled

	var balance int64
	err = cc.Ledger.Exclusive(round.UserID, func(tx *gorm.DB) error {
		// A zero payout still reports the post-settlement balance.
		next, err := cc.Ledger.ApplyDelta(tx, round.UserID, outcome.Payout)
		if err != nil {
			return err
		}
		balance = next
		if err := tx.Save(round).Error; err != nil {
			return err
		}
		return writeHistory(tx, round.UserID, games.Blackjack, round.Bet, outcome.Payout, outcome.Result, outcome)
	})
	if err != nil {
		respondGameError(c, err)
		return
	}

	metrics.RoundsSettled.WithLabelValues(string(games.Blackjack), outcome.Result).Inc()
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Round settled",
		Data: gin.H{
			"round_id": round.ID,
			"player":   state.Player,
			"dealer":   state.Dealer,
			"outcome":  outcome,
			"balance":  balance,
		},
	})
}

// ---------------------------------------------------------------------------
// Three-card poker
// ---------------------------------------------------------------------------

// PokerAnte validates that the balance covers the ante plus the matching
// play stake, debits the ante and deals the player's three cards.
func (cc *CasinoController) PokerAnte(c *gin.Context) {
	user, ok := cc.activeUser(c)
	if !ok {
		return
	}

	var req BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request data: " + err.Error(),
		})
		return
	}
	if err := cc.Catalog.ValidateBet(games.Poker, req.Bet); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	// The play stake equals the ante and is deducted later; both must be
	// covered up front.
	if !cc.Ledger.CanBet(user.ID, 2*req.Bet) {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Balance must cover the ante plus the matching play stake",
		})
		return
	}

	state := games.DealPokerHand(newRNG())
	stateBlob, err := json.Marshal(state)
	if err != nil {
		respondGameError(c, err)
		return
	}
	round := models.GameRound{
		UserID:  user.ID,
		Variant: string(games.Poker),
		Bet:     req.Bet,
		Stage:   games.StageWaitingDecision,
		State:   string(stateBlob),
		Status:  models.RoundActive,
	}

	var balance int64
	err = cc.Ledger.Exclusive(user.ID, func(tx *gorm.DB) error {
		next, err := cc.Ledger.ApplyDelta(tx, user.ID, -req.Bet)
		if err != nil {
			return err
		}
		balance = next
		return tx.Create(&round).Error
	})
	if err != nil {
		respondGameError(c, err)
		return
	}

	metrics.BetsPlaced.WithLabelValues(string(games.Poker)).Inc()
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: "Ante placed",
		Data: gin.H{
			"round_id": round.ID,
			"ante":     round.Bet,
			"player":   state.Player,
			"balance":  balance,
		},
	})
}

// PokerPlay deducts the play stake, deals the dealer's hand and settles.
func (cc *CasinoController) PokerPlay(c *gin.Context) {
	round, ok := cc.loadRound(c, games.Poker)
	if !ok {
		return
	}

	var state games.PokerState
	if err := json.Unmarshal([]byte(round.State), &state); err != nil {
		respondGameError(c, err)
		return
	}

	cfg, err := cc.Catalog.Config(games.Poker)
	if err != nil {
		respondGameError(c, err)
		return
	}

	rng := newRNG()
	var balance int64
	var outcome games.PokerOutcome
	err = cc.Ledger.Exclusive(round.UserID, func(tx *gorm.DB) error {
		// Play stake equals the ante; insufficient funds here leaves the
		// round waiting so the player can still fold.
		next, err := cc.Ledger.ApplyDelta(tx, round.UserID, -round.Bet)
		if err != nil {
			return err
		}
		balance = next

		state.Dealer = games.DrawN(rng, 3)
		outcome = games.SettlePoker(cfg, round.Bet, state)

		if outcome.Payout > 0 {
			next, err = cc.Ledger.ApplyDelta(tx, round.UserID, outcome.Payout)
			if err != nil {
				return err
			}
			balance = next
		}

		stateBlob, err := json.Marshal(state)
		if err != nil {
			return err
		}
		round.State = string(stateBlob)
		round.Stage = games.StagePlayed
		round.Status = models.RoundSettled
		if err := tx.Save(round).Error; err != nil {
			return err
		}
		return writeHistory(tx, round.UserID, games.Poker, 2*round.Bet, outcome.Payout, outcome.Result, outcome)
	})
	if err != nil {
		respondGameError(c, err)
		return
	}

	metrics.RoundsSettled.WithLabelValues(string(games.Poker), outcome.Result).Inc()
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Hand played",
		Data: gin.H{
			"round_id": round.ID,
			"player":   state.Player,
			"dealer":   state.Dealer,
			"outcome":  outcome,
			"balance":  balance,
		},
	})
}

// PokerFold forfeits the ante and settles the round immediately.
func (cc *CasinoController) PokerFold(c *gin.Context) {
	round, ok := cc.loadRound(c, games.Poker)
	if !ok {
		return
	}

	var state games.PokerState
	if err := json.Unmarshal([]byte(round.State), &state); err != nil {
		respondGameError(c, err)
		return
	}

	round.Stage = games.StageFolded
	round.Status = models.RoundSettled
	err := cc.Ledger.Exclusive(round.UserID, func(tx *gorm.DB) error {
		if err := tx.Save(round).Error; err != nil {
			return err
		}
		detail := gin.H{"folded": true, "player": state.Player}
		return writeHistory(tx, round.UserID, games.Poker, round.Bet, 0, models.ResultLoss, detail)
	})
	if err != nil {
		respondGameError(c, err)
		return
	}

	metrics.RoundsSettled.WithLabelValues(string(games.Poker), models.ResultLoss).Inc()
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Hand folded, ante forfeited",
		Data: gin.H{
			"round_id": round.ID,
			"player":   state.Player,
		},
	})
}

// ---------------------------------------------------------------------------
// Roulette
// ---------------------------------------------------------------------------

// RouletteSpin accepts a set of simultaneous bets, debits the total
// stake, spins once and settles every bet against the outcome.
func (cc *CasinoController) RouletteSpin(c *gin.Context) {
	user, ok := cc.activeUser(c)
	if !ok {
		return
	}

	var req RouletteSpinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request data: " + err.Error(),
		})
		return
	}

	cfg, err := cc.Catalog.Config(games.Roulette)
	if err != nil {
		respondGameError(c, err)
		return
	}
	total, err := games.ValidateRouletteBets(cfg, req.Bets)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}
	if err := cc.Catalog.ValidateBet(games.Roulette, total); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	rng := newRNG()
	var balance, win int64
	var number int
	var results []games.RouletteBetResult
	err = cc.Ledger.Exclusive(user.ID, func(tx *gorm.DB) error {
		next, err := cc.Ledger.ApplyDelta(tx, user.ID, -total)
		if err != nil {
			return err
		}
		balance = next
		number = games.Spin(rng)
		win, results = games.SettleRoulette(cfg, req.Bets, number)
		if win > 0 {
			next, err = cc.Ledger.ApplyDelta(tx, user.ID, win)
			if err != nil {
				return err
			}
			balance = next
		}

		detail := gin.H{"number": number, "bets": results}
		return writeHistory(tx, user.ID, games.Roulette, total, win, games.Outcome(total, win), detail)
	})
	if err != nil {
		respondGameError(c, err)
		return
	}

	result := games.Outcome(total, win)
	metrics.BetsPlaced.WithLabelValues(string(games.Roulette)).Inc()
	metrics.RoundsSettled.WithLabelValues(string(games.Roulette), result).Inc()
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Wheel spun",
		Data: gin.H{
			"number":  number,
			"staked":  total,
			"win":     win,
			"result":  result,
			"bets":    results,
			"balance": balance,
		},
	})
}

// ---------------------------------------------------------------------------
// Slots
// ---------------------------------------------------------------------------

// SlotsSpin debits the stake, draws the 5x3 grid and pays the single
// best payline.
func (cc *CasinoController) SlotsSpin(c *gin.Context) {
	user, ok := cc.activeUser(c)
	if !ok {
		return
	}

	var req BetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request data: " + err.Error(),
		})
		return
	}
	if err := cc.Catalog.ValidateBet(games.Slots, req.Bet); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	cfg, err := cc.Catalog.Config(games.Slots)
	if err != nil {
		respondGameError(c, err)
		return
	}

	rng := newRNG()
	var balance, win int64
	var grid [][]string
	var best *games.SlotLineWin
	err = cc.Ledger.Exclusive(user.ID, func(tx *gorm.DB) error {
		next, err := cc.Ledger.ApplyDelta(tx, user.ID, -req.Bet)
		if err != nil {
			return err
		}
		balance = next
		grid = games.SpinGrid(cfg, rng)
		win, best = games.SettleSlots(cfg, req.Bet, grid)
		if win > 0 {
			next, err = cc.Ledger.ApplyDelta(tx, user.ID, win)
			if err != nil {
				return err
			}
			balance = next
		}

		detail := gin.H{"grid": grid, "best_line": best}
		return writeHistory(tx, user.ID, games.Slots, req.Bet, win, games.Outcome(req.Bet, win), detail)
	})
	if err != nil {
		respondGameError(c, err)
		return
	}

	result := games.Outcome(req.Bet, win)
	metrics.BetsPlaced.WithLabelValues(string(games.Slots)).Inc()
	metrics.RoundsSettled.WithLabelValues(string(games.Slots), result).Inc()
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Reels spun",
		Data: gin.H{
			"grid":      grid,
			"best_line": best,
			"staked":    req.Bet,
			"win":       win,
			"result":    result,
			"balance":   balance,
		},
	})
}

// ---------------------------------------------------------------------------
// History and catalog
// ---------------------------------------------------------------------------

// GetGameHistory returns the caller's settled rounds, newest first.
func (cc *CasinoController) GetGameHistory(c *gin.Context) {
	userID := c.GetUint("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	variant := c.Query("variant")
	offset := (page - 1) * limit

	var records []models.GameHistory
	var total int64

	query := cc.DB.Model(&models.GameHistory{}).Where("user_id = ?", userID)
	if variant != "" {
		query = query.Where("variant = ?", variant)
	}
	query.Count(&total)

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to retrieve game history",
		})
		return
	}

	var data []gin.H
	for _, record := range records {
		data = append(data, gin.H{
			"id":         record.ID,
			"variant":    record.Variant,
			"bet":        record.Bet,
			"win":        record.Win,
			"result":     record.Result,
			"detail":     json.RawMessage(record.Detail),
			"created_at": record.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Game history retrieved successfully",
		Data: gin.H{
			"history": data,
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"total_page": (int(total) + limit - 1) / limit,
			},
		},
	})
}

// GetCatalog exposes the bet limits per variant.
func (cc *CasinoController) GetCatalog(c *gin.Context) {
	var data []gin.H
	for _, variant := range cc.Catalog.Variants() {
		cfg, err := cc.Catalog.Config(variant)
		if err != nil {
			continue
		}
		data = append(data, gin.H{
			"variant": cfg.Variant,
			"min_bet": cfg.MinBet,
			"max_bet": cfg.MaxBet,
		})
	}
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Catalog retrieved successfully",
		Data: gin.H{
			"games": data,
		},
	})
}
