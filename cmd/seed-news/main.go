package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mecha-board/mecha-board-backend/internal/config"
	"github.com/mecha-board/mecha-board-backend/internal/database"
	"github.com/mecha-board/mecha-board-backend/internal/models"
	"github.com/mecha-board/mecha-board-backend/internal/services"
)

// 演示数据导入工具：往空库里塞几条新闻和投票，方便本地起前端看效果
func main() {
	fmt.Println("mecha board 演示数据导入工具")
	fmt.Println("============================")

	cfg := &config.Config{
		Environment: getEnv("APP_ENV", "development"),
		Database: config.DatabaseConfig{
			URL:        os.Getenv("DATABASE_URL"),
			SQLitePath: getEnv("SQLITE_PATH", "data/mecha_board.db"),
		},
	}

	fmt.Println("连接数据库...")
	db, err := database.New(cfg)
	if err != nil {
		log.Fatal("数据库连接失败:", err)
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("数据库迁移失败:", err)
	}

	newsService := services.NewNewsService(db)
	voteService := services.NewVoteService(db)

	seedItems := []models.NewsItemCreateRequest{
		{Summary: "New bipedal frame clears certification trials", Link: "https://example.com/frames/cert-trials", Author: "pilot_07"},
		{Summary: "Open-source servo firmware hits 1.0", Link: "https://example.com/servo-firmware-1.0"},
		{Summary: "Hangar bay expansion announced for the eastern district", Link: "https://example.com/hangar-expansion", Author: "dockmaster"},
	}

	created := 0
	for _, req := range seedItems {
		item, err := newsService.CreateNews(&req)
		if err != nil {
			log.Printf("跳过 %q: %v", req.Summary, err)
			continue
		}
		created++

		// 给每条种子新闻投几票，让榜单不是一片0分
		if _, err := voteService.CastVote(item.ID, models.VoteTypeUp, "10.0.0.1", models.VoteSourceHuman); err != nil {
			log.Printf("投票失败 item=%d: %v", item.ID, err)
		}
		if _, err := voteService.CastVote(item.ID, models.VoteTypeUp, "10.0.0.2", models.VoteSourceMachine); err != nil {
			log.Printf("投票失败 item=%d: %v", item.ID, err)
		}
	}

	fmt.Printf("导入完成，共创建 %d 条新闻\n", created)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
