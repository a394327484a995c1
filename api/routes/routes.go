package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/midnighthq/lottery-backend/internal/config"
	"github.com/midnighthq/lottery-backend/internal/handlers"
	"github.com/midnighthq/lottery-backend/internal/middleware"
)

// HandlerDependencies bundles the handlers the router wires up.
type HandlerDependencies struct {
	ParticipantHandler *handlers.ParticipantHandler
	RestaurantHandler  *handlers.RestaurantHandler
	DrawHandler        *handlers.DrawHandler
	BallotHandler      *handlers.BallotHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	// Create router
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	api := router.Group("/api/v1")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Participant routes
		participants := api.Group("/participants")
		{
			participants.POST("", deps.ParticipantHandler.CreateParticipant)
			participants.GET("", deps.ParticipantHandler.GetAllParticipants)
			participants.GET("/:id", deps.ParticipantHandler.GetParticipantByID)
			participants.PUT("/:id", deps.ParticipantHandler.UpdateParticipant)
			participants.DELETE("/:id", deps.ParticipantHandler.DeleteParticipant)
		}

		// Restaurant routes
		restaurants := api.Group("/restaurants")
		{
			restaurants.POST("", deps.RestaurantHandler.CreateRestaurant)
			restaurants.GET("", deps.RestaurantHandler.GetAllRestaurants)
			restaurants.GET("/search", deps.RestaurantHandler.SearchRestaurants)
			restaurants.GET("/:id", deps.RestaurantHandler.GetRestaurantByID)
			restaurants.PUT("/:id", deps.RestaurantHandler.UpdateRestaurant)
			restaurants.DELETE("/:id", deps.RestaurantHandler.DeleteRestaurant)
		}

		// Draw routes
		draws := api.Group("/draws")
		{
			draws.POST("", deps.DrawHandler.CreateDraw)
			draws.GET("", deps.DrawHandler.GetAllDraws)
			draws.GET("/open", deps.DrawHandler.GetOpenDraw)
			draws.GET("/:id", deps.DrawHandler.GetDrawByID)
			draws.GET("/:id/ballots", deps.DrawHandler.GetDrawBallots)
			draws.DELETE("/:id", deps.DrawHandler.DeleteDraw)
			draws.POST("/resolve", deps.DrawHandler.ResolveDraw)
		}

		// Ballot routes
		ballots := api.Group("/ballots")
		{
			ballots.POST("", deps.BallotHandler.CastBallot)
			ballots.GET("", deps.BallotHandler.GetAllBallots)
			ballots.GET("/:id", deps.BallotHandler.GetBallotByID)
			ballots.DELETE("/:id", deps.BallotHandler.DeleteBallot)
		}
	}

	return router
}
