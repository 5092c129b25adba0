package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DanielXT1021S/Nimetsu-casino-sub000/controllers"
)

// SetupPaymentRoutes registers the gateway callback. The webhook is
// unauthenticated; the gateway reference inside the event body is the
// only credential.
func SetupPaymentRoutes(router *gin.Engine, payments *controllers.PaymentsController) {
	group := router.Group("/api/payments")
	{
		group.POST("/webhook", payments.GatewayWebhook)
	}
}
