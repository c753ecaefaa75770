package main

import (
	"context"
	"log"
	"strings"
	"time"

	"music-catalog/config"
	"music-catalog/database"
	albumsapi "music-catalog/internal/api/albums"
	artistsapi "music-catalog/internal/api/artists"
	routes "music-catalog/internal/app/http"
	"music-catalog/internal/app/http/middleware"
	"music-catalog/internal/cache"
	"music-catalog/internal/platform/logger"
	"music-catalog/internal/service"
	"music-catalog/internal/store"
	"music-catalog/internal/store/gormstore"
	"music-catalog/internal/store/memstore"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLog, err := logger.New(config.LOG_MODE)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer baseLog.Sync()

	artistStore, albumStore := openStores(baseLog)
	c := cache.NewCoherent(openCache(baseLog), baseLog)

	artistSvc := service.NewArtistService(artistStore, albumStore, c, baseLog)
	albumSvc := service.NewAlbumService(albumStore, artistStore, c, baseLog)

	if config.SEED_DATA {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := service.Seed(ctx, artistSvc, albumSvc, baseLog); err != nil {
			baseLog.Fatal("Failed to seed catalog", "error", err)
		}
		cancel()
	}

	if strings.HasPrefix(strings.ToLower(config.LOG_MODE), "prod") {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(baseLog))

	r.Use(cors.New(corsConfig(config.CORS_ORIGIN)))

	routes.RegisterRoutes(r, routes.Deps{
		Albums:     albumsapi.NewHandler(albumSvc, baseLog),
		Artists:    artistsapi.NewHandler(artistSvc, baseLog),
		APIVersion: config.API_VERSION,
		JWTSecret:  config.JWT_SECRET,
	})

	baseLog.Info("Listening", "port", config.PORT, "driver", config.DB_DRIVER)
	if err := r.Run(":" + config.PORT); err != nil {
		baseLog.Fatal("Server stopped", "error", err)
	}
}

func corsConfig(origin string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if origin == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = strings.Split(origin, ",")
	cfg.AllowCredentials = true
	return cfg
}

func openStores(baseLog *logger.Logger) (store.ArtistStore, store.AlbumStore) {
	if config.DB_DRIVER == "memory" {
		mem := memstore.New(baseLog)
		baseLog.Info("Using in-memory catalog store")
		return mem.Artists(), mem.Albums()
	}
	db := database.InitDB(config.DB_DRIVER, config.DB_URL, baseLog)
	return gormstore.NewArtistStore(db, baseLog), gormstore.NewAlbumStore(db, baseLog)
}

func openCache(baseLog *logger.Logger) cache.Cache {
	if config.REDIS_ADDR == "" {
		return cache.NewMemory(config.CACHE_TTL)
	}
	rc, err := cache.NewRedis(config.REDIS_ADDR, config.CACHE_TTL, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to connect to redis", "addr", config.REDIS_ADDR, "error", err)
	}
	return rc
}
