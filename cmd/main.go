package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mecha-board/mecha-board-backend/internal/api"
	"github.com/mecha-board/mecha-board-backend/internal/config"
	"github.com/mecha-board/mecha-board-backend/internal/database"
	"github.com/mecha-board/mecha-board-backend/internal/scheduler"
	"github.com/mecha-board/mecha-board-backend/internal/services"
)

func main() {
	// load config
	cfg, err := config.LoadConfig("internal/config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// initialize database; 连接失败直接退出，不降级到另一个后端
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close(db)

	if cfg.Database.UsePostgres() {
		log.Println("Using PostgreSQL backend")
	} else {
		log.Printf("Using embedded SQLite backend at %s", cfg.Database.SQLitePath)
	}

	// execute database migration
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// initialize score scheduler
	voteService := services.NewVoteService(db)
	scoreScheduler := scheduler.NewScoreScheduler(voteService)
	if cfg.Scheduler.ScoreSweepEnabled {
		if err := scoreScheduler.Start(); err != nil {
			log.Fatalf("Failed to start score scheduler: %v", err)
		}
		defer scoreScheduler.Stop()
	} else {
		log.Println("Score sweep disabled in configuration")
	}

	// set up routes
	router := api.SetupRoutes(db)

	// create http server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")

		if cfg.Scheduler.ScoreSweepEnabled {
			scoreScheduler.Stop()
		}

		if err := server.Close(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server is starting on %s", cfg.Server.Addr)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
