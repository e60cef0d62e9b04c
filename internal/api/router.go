package api

import (
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/api/handler"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/api/middleware"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/config"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/service"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin router with all routes.
func SetupRouter(index handler.Index, rate service.RateProvider, cfg *config.ServerConfig) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.CORS.AllowAllOrigins,
	}))

	healthHandler := handler.NewHealthHandler()
	photoHandler := handler.NewPhotoHandler(index)
	searchHandler := handler.NewSearchHandler(index)
	costHandler := handler.NewCostHandler(rate)

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/photos", photoHandler.Upload)
		v1.GET("/photos", photoHandler.List)
		v1.DELETE("/photos/:name", photoHandler.Delete)
		v1.DELETE("/photos", photoHandler.DeleteAll)

		v1.POST("/search", searchHandler.TextSearch)
		v1.GET("/search", searchHandler.TextSearchGet)

		v1.GET("/cost", costHandler.Estimate)
		v1.GET("/models", costHandler.Models)
	}

	return r
}
