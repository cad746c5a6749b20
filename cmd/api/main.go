package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/latinbarber/booking-api/internal/cache"
	"github.com/latinbarber/booking-api/internal/config"
	dbpkg "github.com/latinbarber/booking-api/internal/db"
	"github.com/latinbarber/booking-api/internal/domain/schedule"
	"github.com/latinbarber/booking-api/internal/events"
	"github.com/latinbarber/booking-api/internal/feed"
	infraRepo "github.com/latinbarber/booking-api/internal/infra/repository"
	"github.com/latinbarber/booking-api/internal/notifier"
	"github.com/latinbarber/booking-api/internal/routes"
	"github.com/latinbarber/booking-api/internal/storage"
	"github.com/latinbarber/booking-api/internal/timezone"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	repo := infraRepo.NewGormRepository(db)
	loc := timezone.Location(cfg.Timezone)

	// ------------------------------
	// OPTIONAL INTEGRATIONS
	// ------------------------------
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	shopConfig := cache.NewShopConfigCache(rdb, repo)

	hub := feed.NewHub(repo)
	defer hub.Close()

	sinks := []events.Sink{hub}
	if cfg.AMQPUrl != "" {
		n, err := notifier.NewAMQPNotifier(cfg.AMQPUrl, cfg.AMQPExchange)
		if err != nil {
			log.Printf("amqp disabled: %v", err)
		} else {
			defer n.Close()
			sinks = append(sinks, n)
		}
	}

	dispatcher := events.NewDispatcher(sinks...)
	defer dispatcher.Close()

	var archiver *storage.ReportArchiver
	if cfg.ReportsBucket != "" {
		archiver = storage.NewReportArchiver(
			cfg.AWSRegion,
			cfg.AWSAccessKey,
			cfg.AWSSecretKey,
			cfg.ReportsBucket,
		)
	}

	// ------------------------------
	// HTTP
	// ------------------------------
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		Config:     cfg,
		Repo:       repo,
		ShopConfig: shopConfig,
		Dispatcher: dispatcher,
		Hub:        hub,
		Archiver:   archiver,
		Clock:      schedule.SystemClock{},
		Location:   loc,
	})

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
