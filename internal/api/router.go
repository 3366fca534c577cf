package api

import (
	"github.com/gin-gonic/gin"
	"github.com/mecha-board/mecha-board-backend/internal/middleware"
	"github.com/mecha-board/mecha-board-backend/internal/services"
	"gorm.io/gorm"
)

func SetupRoutes(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	// add cors middleware
	r.Use(middleware.CORSMiddleware())

	// health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "mecha board backend is running",
		})
	})

	// initialize services and handlers
	newsService := services.NewNewsService(db)
	voteService := services.NewVoteService(db)
	newsHandler := NewNewsHandler(newsService)
	voteHandler := NewVoteHandler(voteService, newsService)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		news := v1.Group("/news")
		{
			news.GET("", newsHandler.GetNewsItems)
			news.POST("", newsHandler.CreateNews)
			news.GET("/:id", newsHandler.GetNewsItemByID)
			news.POST("/:id/vote", voteHandler.CastVote)
			news.GET("/:id/votes", voteHandler.GetVoteCounts)
		}
	}

	return r
}
