package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DanielXT1021S/Nimetsu-casino-sub000/ledger"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/models"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/payments"
)

// AdminController is the operator surface: user management, the
// withdrawal settlement queue, manual balance adjustments and the
// dashboard.
type AdminController struct {
	DB       *gorm.DB
	Ledger   *ledger.Service
	Payments *payments.Service
}

// GetAllUsers returns all users with pagination
func (a *AdminController) GetAllUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	search := c.Query("search")
	status := c.Query("status")

	offset := (page - 1) * limit

	var users []models.User
	var total int64

	query := a.DB.Model(&models.User{})
	if search != "" {
		query = query.Where("username LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	if err := query.Preload("Balance").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to retrieve users",
		})
		return
	}

	var userData []gin.H
	for _, user := range users {
		var balance int64
		if user.Balance != nil {
			balance = user.Balance.Balance
		}
		userData = append(userData, gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"role":       user.Role,
			"status":     user.Status,
			"balance":    balance,
			"created_at": user.CreatedAt,
			"updated_at": user.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Users retrieved successfully",
		Data: gin.H{
			"users": userData,
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"total_page": (int(total) + limit - 1) / limit,
			},
		},
	})
}

// GetUserByID returns specific user by ID
func (a *AdminController) GetUserByID(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := a.DB.Preload("Balance").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "User not found",
		})
		return
	}

	var balance int64
	if user.Balance != nil {
		balance = user.Balance.Balance
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "User retrieved successfully",
		Data: gin.H{
			"user": gin.H{
				"id":         user.ID,
				"username":   user.Username,
				"email":      user.Email,
				"role":       user.Role,
				"status":     user.Status,
				"balance":    balance,
				"created_at": user.CreatedAt,
				"updated_at": user.UpdatedAt,
			},
		},
	})
}

// BanUserRequest structure for banning user
type BanUserRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// BanUser bans a user account
func (a *AdminController) BanUser(c *gin.Context) {
	userID := c.Param("id")

	var req BanUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request data: " + err.Error(),
		})
		return
	}

	var user models.User
	if err := a.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "User not found",
		})
		return
	}

	if user.Status == "banned" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "User is already banned",
		})
		return
	}
	if user.Role == "admin" {
		c.JSON(http.StatusForbidden, Response{
			Success: false,
			Message: "Cannot ban admin users",
		})
		return
	}

	user.Status = "banned"
	if err := a.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to ban user",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "User banned successfully",
		Data: gin.H{
			"user": gin.H{
				"id":       user.ID,
				"username": user.Username,
				"email":    user.Email,
				"status":   user.Status,
			},
			"ban_reason": req.Reason,
		},
	})
}

// UnbanUser unbans a user account
func (a *AdminController) UnbanUser(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := a.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "User not found",
		})
		return
	}

	if user.Status != "banned" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "User is not banned",
		})
		return
	}

	user.Status = "active"
	if err := a.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to unban user",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "User unbanned successfully",
		Data: gin.H{
			"user": gin.H{
				"id":       user.ID,
				"username": user.Username,
				"email":    user.Email,
				"status":   user.Status,
			},
		},
	})
}

// ManualAdjustRequest applies an out-of-band balance correction: a
// positive delta credits fichas, a negative one debits them.
type ManualAdjustRequest struct {
	Delta  int64  `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// ManualAdjust credits or debits a user's balance outside the game and
// gateway flows, recorded as a completed transaction.
func (a *AdminController) ManualAdjust(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid user id",
		})
		return
	}

	var req ManualAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request data: " + err.Error(),
		})
		return
	}

	var user models.User
	if err := a.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "User not found",
		})
		return
	}

	cmd := payments.AdminCommand{
		AdminID: c.GetUint("user_id"),
		Reason:  req.Reason,
	}
	transaction, err := a.Payments.ManualAdjust(uint(userID), req.Delta, cmd)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	balance, _ := a.Ledger.Balance(uint(userID))
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Balance adjusted successfully",
		Data: gin.H{
			"transaction": transactionData(transaction),
			"balance":     balance,
		},
	})
}

// ListWithdrawals returns the withdrawal settlement queue, optionally
// filtered by status.
func (a *AdminController) ListWithdrawals(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	status := c.DefaultQuery("status", models.TxPending)
	offset := (page - 1) * limit

	var transactions []models.Transaction
	var total int64

	query := a.DB.Model(&models.Transaction{}).Where("direction = ?", models.TxWithdraw)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	if err := query.Preload("User").Preload("StatusHistory").
		Order("created_at ASC").Offset(offset).Limit(limit).
		Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to retrieve withdrawals",
		})
		return
	}

	var data []gin.H
	for i := range transactions {
		entry := transactionData(&transactions[i])
		if transactions[i].User != nil {
			entry["user"] = gin.H{
				"id":       transactions[i].User.ID,
				"username": transactions[i].User.Username,
				"email":    transactions[i].User.Email,
			}
		}
		data = append(data, entry)
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Withdrawals retrieved successfully",
		Data: gin.H{
			"withdrawals": data,
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"total_page": (int(total) + limit - 1) / limit,
			},
		},
	})
}

// WithdrawalActionRequest carries the operator's reason for a
// settlement-queue transition.
type WithdrawalActionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (a *AdminController) withdrawalAction(c *gin.Context, action func(uint, payments.AdminCommand) (*models.Transaction, error), message string) {
	txID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid transaction id",
		})
		return
	}

	var req WithdrawalActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request data: " + err.Error(),
		})
		return
	}

	cmd := payments.AdminCommand{
		AdminID: c.GetUint("user_id"),
		Reason:  req.Reason,
	}
	transaction, err := action(uint(txID), cmd)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data: gin.H{
			"transaction": transactionData(transaction),
		},
	})
}

// ProcessWithdrawal moves a pending withdrawal to processing.
func (a *AdminController) ProcessWithdrawal(c *gin.Context) {
	a.withdrawalAction(c, a.Payments.MarkWithdrawalProcessing, "Withdrawal marked as processing")
}

// CompleteWithdrawal records that the real-world transfer occurred.
func (a *AdminController) CompleteWithdrawal(c *gin.Context) {
	a.withdrawalAction(c, a.Payments.CompleteWithdrawal, "Withdrawal completed")
}

// RejectWithdrawal rejects the withdrawal and returns the fichas.
func (a *AdminController) RejectWithdrawal(c *gin.Context) {
	a.withdrawalAction(c, a.Payments.RejectWithdrawal, "Withdrawal rejected, fichas returned")
}

// GetDashboardStats returns admin dashboard statistics
func (a *AdminController) GetDashboardStats(c *gin.Context) {
	var totalUsers int64
	var activeUsers int64
	var bannedUsers int64
	var totalBalance int64
	var totalLocked int64
	var totalRounds int64
	var totalBets int64
	var totalWins int64
	var pendingWithdrawals int64

	a.DB.Model(&models.User{}).Count(&totalUsers)
	a.DB.Model(&models.User{}).Where("status = ?", "active").Count(&activeUsers)
	a.DB.Model(&models.User{}).Where("status = ?", "banned").Count(&bannedUsers)
	a.DB.Model(&models.Balance{}).Select("COALESCE(SUM(balance), 0)").Scan(&totalBalance)
	a.DB.Model(&models.Balance{}).Select("COALESCE(SUM(locked), 0)").Scan(&totalLocked)

	a.DB.Model(&models.GameHistory{}).Count(&totalRounds)
	a.DB.Model(&models.GameHistory{}).Select("COALESCE(SUM(bet), 0)").Scan(&totalBets)
	a.DB.Model(&models.GameHistory{}).Select("COALESCE(SUM(win), 0)").Scan(&totalWins)

	a.DB.Model(&models.Transaction{}).
		Where("direction = ? AND status IN ?", models.TxWithdraw, []string{models.TxPending, models.TxProcessing}).
		Count(&pendingWithdrawals)

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Dashboard statistics retrieved successfully",
		Data: gin.H{
			"statistics": gin.H{
				"total_users":         totalUsers,
				"active_users":        activeUsers,
				"banned_users":        bannedUsers,
				"total_balance":       totalBalance,
				"total_locked":        totalLocked,
				"total_rounds":        totalRounds,
				"total_bets":          totalBets,
				"total_wins":          totalWins,
				"house_profit":        totalBets - totalWins,
				"pending_withdrawals": pendingWithdrawals,
			},
		},
	})
}
