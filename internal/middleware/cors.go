package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mecha-board/mecha-board-backend/internal/config"
)

// cors middleware
func CORSMiddleware() gin.HandlerFunc {
	// 测试里不加载配置文件，给个本地开发缺省值
	allowOrigins := []string{"http://localhost:5173"}
	if config.AppConfig != nil && len(config.AppConfig.CORS.AllowOrigins) > 0 {
		allowOrigins = config.AppConfig.CORS.AllowOrigins
	}

	return cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
