package main

import (
	"context"
	"os"
	"time"

	"portfolio-app/config"
	"portfolio-app/database"
	albumsapi "portfolio-app/internal/api/albums"
	authapi "portfolio-app/internal/api/auth"
	bookingsapi "portfolio-app/internal/api/bookings"
	linksapi "portfolio-app/internal/api/links"
	profileapi "portfolio-app/internal/api/profile"
	routes "portfolio-app/internal/app/http"
	"portfolio-app/internal/app/http/middleware"
	"portfolio-app/internal/logging"
	"portfolio-app/internal/ratelimit"
	"portfolio-app/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	log := logging.New(os.Getenv("APP_ENV"))

	db, err := database.Open(config.DB_URL)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	store, err := storage.NewObjectStore(storage.Config{
		Endpoint:  config.STORAGE_ENDPOINT,
		AccessKey: config.STORAGE_ACCESS_KEY,
		SecretKey: config.STORAGE_SECRET_KEY,
		Bucket:    config.STORAGE_BUCKET,
		PublicURL: config.STORAGE_PUBLIC_URL,
		UseSSL:    config.STORAGE_USE_SSL == "true",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object store init failed")
	}
	if err := store.EnsureBucket(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("bucket init failed")
	}

	var guestLimiter *ratelimit.FixedWindowLimiter
	if config.REDIS_ADDR != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.REDIS_ADDR,
			Password: config.REDIS_PASSWORD,
		})
		guestLimiter, err = ratelimit.NewFixedWindowLimiter(rdb, "portfolio:guest", 30, time.Minute)
		if err != nil {
			log.Fatal().Err(err).Msg("rate limiter init failed")
		}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{config.CORS_ORIGIN},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Auth:         authapi.NewHandler(db),
		Profile:      profileapi.NewHandler(db, store),
		Albums:       albumsapi.NewHandler(db, store),
		Links:        linksapi.NewHandler(db),
		Bookings:     bookingsapi.NewHandler(db),
		GuestLimiter: guestLimiter,
	})

	log.Info().Str("port", config.PORT).Msg("listening")
	if err := r.Run(":" + config.PORT); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
