package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/estudionova/salon-agenda/internal/cache"
	"github.com/estudionova/salon-agenda/internal/config"
	dbpkg "github.com/estudionova/salon-agenda/internal/db"
	"github.com/estudionova/salon-agenda/internal/middleware"
	"github.com/estudionova/salon-agenda/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := cache.NewRedisClient(cfg)
	agendaCache := cache.NewAgendaCache(rdb)

	r := gin.Default()

	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, agendaCache, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
