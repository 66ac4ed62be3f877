package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sofraProject/foodDelivery-sub000/configs"
	"github.com/sofraProject/foodDelivery-sub000/middlewares"
	"github.com/sofraProject/foodDelivery-sub000/routes"
	"github.com/sofraProject/foodDelivery-sub000/ws"
	"go.uber.org/zap"
)

func main() {
	cfg := configs.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	// DB
	db, err := configs.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	if err := configs.SetupDatabase(db); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}
	if err := configs.SeedAdmin(db); err != nil {
		logger.Fatal("seed admin failed", zap.Error(err))
	}
	if err := configs.SeedLookups(db); err != nil {
		logger.Fatal("seed lookups failed", zap.Error(err))
	}

	// One hub per process, injected everywhere it is needed.
	hub := ws.NewHub(logger)

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigin))

	routes.RegisterRoutes(r, db, cfg, hub, logger)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logger.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
