package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/DanielXT1021S/Nimetsu-casino-sub000/ledger"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/models"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/payments"
)

// UserController serves the player-facing account surface: profile,
// balance, deposit initiation, withdrawal request/cancel and the
// transaction history.
type UserController struct {
	DB       *gorm.DB
	Ledger   *ledger.Service
	Payments *payments.Service
}

func (u *UserController) GetProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user models.User
	if err := u.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "User not found",
		})
		return
	}

	balance, err := u.Ledger.GetOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to retrieve balance",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Profile retrieved successfully",
		Data: gin.H{
			"user": gin.H{
				"id":       user.ID,
				"username": user.Username,
				"email":    user.Email,
				"role":     user.Role,
				"status":   user.Status,
			},
			"balance": balance,
		},
	})
}

// UpdateProfileRequest structure for profile updates
type UpdateProfileRequest struct {
	Username string `json:"username" binding:"omitempty,min=3,max=50"`
	Email    string `json:"email" binding:"omitempty,email"`
}

func (u *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request data: " + err.Error(),
		})
		return
	}

	var user models.User
	if err := u.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "User not found",
		})
		return
	}

	if req.Username != "" && req.Username != user.Username {
		var existingUser models.User
		if err := u.DB.Where("username = ? AND id != ?", req.Username, userID).First(&existingUser).Error; err == nil {
			c.JSON(http.StatusConflict, Response{
				Success: false,
				Message: "Username already exists",
			})
			return
		}
		user.Username = req.Username
	}

	if req.Email != "" && req.Email != user.Email {
		var existingUser models.User
		if err := u.DB.Where("email = ? AND id != ?", req.Email, userID).First(&existingUser).Error; err == nil {
			c.JSON(http.StatusConflict, Response{
				Success: false,
				Message: "Email already exists",
			})
			return
		}
		user.Email = req.Email
	}

	if err := u.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to update profile",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Profile updated successfully",
		Data: gin.H{
			"user": gin.H{
				"id":       user.ID,
				"username": user.Username,
				"email":    user.Email,
				"role":     user.Role,
				"status":   user.Status,
			},
		},
	})
}

// GetBalance returns the caller's spendable fichas balance plus the
// amount reserved by in-flight withdrawals.
func (u *UserController) GetBalance(c *gin.Context) {
	userID := c.GetUint("user_id")

	balance, err := u.Ledger.GetOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to retrieve balance",
		})
		return
	}
	locked, err := u.Ledger.Locked(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to retrieve balance",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Balance retrieved successfully",
		Data: gin.H{
			"balance": balance,
			"locked":  locked,
		},
	})
}

// ChangePasswordRequest structure for password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

func (u *UserController) ChangePassword(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request data: " + err.Error(),
		})
		return
	}

	var user models.User
	if err := u.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "User not found",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, Response{
			Success: false,
			Message: "Current password is incorrect",
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to process new password",
		})
		return
	}

	user.Password = string(hashedPassword)
	if err := u.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to update password",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Password changed successfully",
	})
}

// DepositRequest is the fiat amount the player wants to convert into
// fichas through the payment gateway.
type DepositRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	PayerEmail string          `json:"payer_email" binding:"omitempty,email"`
}

// WithdrawRequest asks to convert fichas back into fiat via the chosen
// payout method.
type WithdrawRequest struct {
	Fichas int64  `json:"fichas" binding:"required,gt=0"`
	Method string `json:"method" binding:"required"`
	Detail string `json:"detail,omitempty"`
}

// Deposit initiates a gateway deposit. The balance is credited only when
// the gateway's confirmation event arrives.
func (u *UserController) Deposit(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request data: " + err.Error(),
		})
		return
	}

	var user models.User
	if err := u.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "User not found",
		})
		return
	}
	if user.Status == "banned" {
		c.JSON(http.StatusForbidden, Response{
			Success: false,
			Message: "Account is banned, cannot deposit",
		})
		return
	}

	payerEmail := req.PayerEmail
	if payerEmail == "" {
		payerEmail = user.Email
	}

	transaction, gateway, err := u.Payments.InitiateDeposit(userID, req.Amount, payerEmail)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: "Deposit initiated, awaiting gateway confirmation",
		Data: gin.H{
			"transaction": transactionData(transaction),
			"gateway":     gateway,
		},
	})
}

// Withdraw moves the fichas into the locked reserve immediately and
// queues the withdrawal for operator settlement.
func (u *UserController) Withdraw(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid request data: " + err.Error(),
		})
		return
	}
	if req.Method != models.MethodBank && req.Method != models.MethodCrypto {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Withdrawal method must be bank or crypto",
		})
		return
	}

	var user models.User
	if err := u.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Message: "User not found",
		})
		return
	}
	if user.Status == "banned" {
		c.JSON(http.StatusForbidden, Response{
			Success: false,
			Message: "Account is banned, cannot withdraw",
		})
		return
	}

	transaction, err := u.Payments.RequestWithdrawal(userID, req.Fichas, req.Method, req.Detail)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: "Withdrawal requested, fichas reserved",
		Data: gin.H{
			"transaction": transactionData(transaction),
		},
	})
}

// CancelWithdrawal lets the caller cancel their own still-pending
// withdrawal; the fichas return to the balance.
func (u *UserController) CancelWithdrawal(c *gin.Context) {
	userID := c.GetUint("user_id")

	txID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid transaction id",
		})
		return
	}

	transaction, err := u.Payments.CancelWithdrawal(uint(txID), userID, "cancelled by user")
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Withdrawal cancelled, fichas returned",
		Data: gin.H{
			"transaction": transactionData(transaction),
		},
	})
}

// GetTransactionHistory returns the caller's transactions with their
// full status trail, newest first.
func (u *UserController) GetTransactionHistory(c *gin.Context) {
	userID := c.GetUint("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	direction := c.Query("direction")
	status := c.Query("status")
	offset := (page - 1) * limit

	var transactions []models.Transaction
	var total int64

	query := u.DB.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if direction != "" {
		query = query.Where("direction = ?", direction)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)

	if err := query.Preload("StatusHistory").
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to retrieve transaction history",
		})
		return
	}

	var data []gin.H
	for i := range transactions {
		data = append(data, transactionData(&transactions[i]))
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Transaction history retrieved successfully",
		Data: gin.H{
			"transactions": data,
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"total_page": (int(total) + limit - 1) / limit,
			},
		},
	})
}

// transactionData formats a transaction and its status trail for the
// JSON envelope.
func transactionData(t *models.Transaction) gin.H {
	data := gin.H{
		"id":         t.ID,
		"direction":  t.Direction,
		"method":     t.Method,
		"amount":     t.Amount,
		"fichas":     t.Fichas,
		"status":     t.Status,
		"reference":  t.Reference,
		"detail":     t.Detail,
		"created_at": t.CreatedAt,
	}
	if len(t.StatusHistory) > 0 {
		var trail []gin.H
		for _, h := range t.StatusHistory {
			trail = append(trail, gin.H{
				"old_status": h.OldStatus,
				"new_status": h.NewStatus,
				"reason":     h.Reason,
				"actor_kind": h.ActorKind,
				"created_at": h.CreatedAt,
			})
		}
		data["status_history"] = trail
	}
	return data
}
