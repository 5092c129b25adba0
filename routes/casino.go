package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/DanielXT1021S/Nimetsu-casino-sub000/controllers"
)

func SetupCasinoRoutes(router *gin.Engine, auth *controllers.AuthController, casino *controllers.CasinoController) {
	group := router.Group("/api/casino")
	group.Use(auth.AuthMiddleware())
	{
		group.GET("/catalog", casino.GetCatalog)
		group.GET("/history", casino.GetGameHistory)

		group.POST("/blackjack/deal", casino.BlackjackDeal)
		group.POST("/blackjack/:id/hit", casino.BlackjackHit)
		group.POST("/blackjack/:id/stand", casino.BlackjackStand)

		group.POST("/poker/ante", casino.PokerAnte)
		group.POST("/poker/:id/play", casino.PokerPlay)
		group.POST("/poker/:id/fold", casino.PokerFold)

		group.POST("/roulette/spin", casino.RouletteSpin)

		group.POST("/slots/spin", casino.SlotsSpin)
	}
}
