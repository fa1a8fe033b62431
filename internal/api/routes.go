package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title GitHub Release Tracker API
// @version 1.0
// @description API for tracking GitHub repositories and their releases
// @contact.name API Support
// @contact.url http://github.com/Kamar-Folarin
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// SetupRouter configures the API routes
func SetupRouter(h *Handler, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger), CORS())

	r.GET("/health", h.Health)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", h.Health)

		repositories := v1.Group("/repositories")
		{
			repositories.GET("", h.ListRepositories)
			repositories.POST("", h.TrackRepository)
			repositories.GET("/:id", h.GetRepository)
			repositories.DELETE("/:id", h.RemoveRepository)
			repositories.POST("/:id/sync", h.SyncRepository)
			repositories.GET("/:id/releases", h.ListReleases)
			repositories.POST("/:id/seen", h.MarkAllReleasesSeen)
		}

		releases := v1.Group("/releases")
		{
			releases.POST("/:id/seen", h.MarkReleaseSeen)
			releases.POST("/:id/unseen", h.MarkReleaseUnseen)
		}

		v1.POST("/sync", h.SyncAllRepositories)
	}

	return r
}
