package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/glowslot/salon-scheduler/internal/config"
	"github.com/glowslot/salon-scheduler/internal/db"
	"github.com/glowslot/salon-scheduler/internal/logger"
	"github.com/glowslot/salon-scheduler/internal/middleware"
	"github.com/glowslot/salon-scheduler/internal/redisconn"
	"github.com/glowslot/salon-scheduler/internal/routes"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	cfg := config.Load()

	database := db.NewDB(cfg, log)
	redisClient := redisconn.New(cfg, log)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, database, redisClient, cfg, log)

	log.Info().Str("addr", cfg.Addr()).Msg("starting api server")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
