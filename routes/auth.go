package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DanielXT1021S/Nimetsu-casino-sub000/controllers"
)

func SetupAuthRoutes(router *gin.Engine, auth *controllers.AuthController) {
	group := router.Group("/api/auth")
	{
		group.POST("/register", auth.Register)
		group.POST("/login", auth.Login)
	}
}

func SetupProtectedRoutes(router *gin.Engine, auth *controllers.AuthController, user *controllers.UserController) {
	protected := router.Group("/api")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/profile", user.GetProfile)
		protected.PUT("/profile", user.UpdateProfile)
		protected.PUT("/change-password", user.ChangePassword)
		protected.POST("/logout", auth.Logout)

		protected.GET("/balance", user.GetBalance)

		protected.POST("/deposit", user.Deposit)
		protected.POST("/withdraw", user.Withdraw)
		protected.POST("/withdraw/:id/cancel", user.CancelWithdrawal)
		protected.GET("/transactions", user.GetTransactionHistory)
	}
}
