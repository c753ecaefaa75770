package routes

import (
	"net/http"

	albumsapi "music-catalog/internal/api/albums"
	artistsapi "music-catalog/internal/api/artists"
	"music-catalog/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Albums  *albumsapi.Handler
	Artists *artistsapi.Handler

	APIVersion string
	// JWTSecret, when set, restricts writes to tokens with role "admin".
	JWTSecret string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	version := d.APIVersion
	if version == "" {
		version = "v1"
	}
	api := r.Group("/api/" + version)

	// Reads are public
	api.GET("/albumes", d.Albums.List)
	api.GET("/albumes/:key", d.Albums.Get)
	api.GET("/artistas", d.Artists.List)
	api.GET("/artistas/:id", d.Artists.Get)

	// Writes
	write := api.Group("/")
	if d.JWTSecret != "" {
		write.Use(middleware.AuthMiddleware(d.JWTSecret), middleware.RequireRole("admin"))
	}
	write.Use(middleware.SanitizeAndCleanInputMiddleware())

	write.POST("/albumes", d.Albums.Create)
	write.PUT("/albumes/:key", d.Albums.Update)
	write.PATCH("/albumes/:key", d.Albums.Update)
	write.DELETE("/albumes/:key", d.Albums.Delete)

	write.POST("/artistas", d.Artists.Create)
	write.PUT("/artistas/:id", d.Artists.Update)
	write.PATCH("/artistas/:id", d.Artists.Update)
	write.DELETE("/artistas/:id", d.Artists.Delete)
}
