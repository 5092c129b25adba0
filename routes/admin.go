package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DanielXT1021S/Nimetsu-casino-sub000/controllers"
)

// SetupAdminRoutes configures admin routes that require admin privileges
func SetupAdminRoutes(router *gin.Engine, auth *controllers.AuthController, admin *controllers.AdminController) {
	group := router.Group("/api/admin")
	group.Use(auth.AuthMiddleware())
	group.Use(auth.AdminMiddleware())
	{
		// Dashboard
		group.GET("/dashboard", admin.GetDashboardStats)

		// User management
		group.GET("/users", admin.GetAllUsers)
		group.GET("/users/:id", admin.GetUserByID)
		group.POST("/users/:id/ban", admin.BanUser)
		group.POST("/users/:id/unban", admin.UnbanUser)
		group.POST("/users/:id/adjust", admin.ManualAdjust)

		// Withdrawal settlement queue
		group.GET("/withdrawals", admin.ListWithdrawals)
		group.POST("/withdrawals/:id/process", admin.ProcessWithdrawal)
		group.POST("/withdrawals/:id/complete", admin.CompleteWithdrawal)
		group.POST("/withdrawals/:id/reject", admin.RejectWithdrawal)
	}
}
