package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/danupratama/shopping-note/internal/config"
	"github.com/danupratama/shopping-note/internal/db"
	"github.com/danupratama/shopping-note/internal/logging"
	"github.com/danupratama/shopping-note/internal/store"
	"github.com/danupratama/shopping-note/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	if cfg.SeedDB {
		if err := db.Seed(context.Background(), database); err != nil {
			logger.Error("failed to seed database", "error", err)
			return
		}
	}

	server := web.NewServer(store.NewItemStore(database), logger, web.Options{
		CORSOrigins:  cfg.CORSOrigins,
		ExposeErrors: !cfg.Production,
	})

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
