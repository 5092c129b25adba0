package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DanielXT1021S/Nimetsu-casino-sub000/ledger"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/logger"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/payments"

	"go.uber.org/zap"
)

// PaymentsController receives the payment gateway's asynchronous
// confirmation events. The endpoint is unauthenticated; the gateway
// reference inside the event is the only credential.
type PaymentsController struct {
	Payments *payments.Service
}

// respondPaymentError maps settlement errors onto the HTTP surface.
func respondPaymentError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, payments.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, payments.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, payments.ErrNotTransitionable),
		errors.Is(err, payments.ErrDuplicateConfirmation):
		status = http.StatusConflict
	case errors.Is(err, payments.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInsufficientFunds):
		status = http.StatusBadRequest
	}
	c.JSON(status, Response{
		Success: false,
		Message: err.Error(),
	})
}

// GatewayWebhook consumes one gateway event. Redeliveries of an already
// applied payment answer 200 so the gateway stops retrying.
func (p *PaymentsController) GatewayWebhook(c *gin.Context) {
	var ev payments.GatewayEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid event payload: " + err.Error(),
		})
		return
	}
	if ev.PaymentID == "" || ev.PreferenceID == "" {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Event is missing payment or preference identifier",
		})
		return
	}

	transaction, err := p.Payments.ConfirmDeposit(ev)
	if err != nil {
		if errors.Is(err, payments.ErrDuplicateConfirmation) {
			logger.L().Info("duplicate gateway event ignored",
				zap.String("payment_id", ev.PaymentID))
			c.JSON(http.StatusOK, Response{
				Success: true,
				Message: "Event already applied",
			})
			return
		}
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Event applied",
		Data: gin.H{
			"transaction": transactionData(transaction),
		},
	})
}
