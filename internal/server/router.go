package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"github.com/shelfware/inventory/internal/config"
	"github.com/shelfware/inventory/internal/logger"
	"github.com/shelfware/inventory/internal/metrics"
	"github.com/shelfware/inventory/internal/product"
)

// Dependencies groups the services required by the HTTP router.
type Dependencies struct {
	Config         config.Config
	DB             *pgxpool.Pool
	ObjectStore    *minio.Client
	ProductService *product.Service
}

// NewRouter builds a Gin engine with foundational middleware and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.Middleware())
	router.Use(metrics.Middleware())

	if deps.Config.Server.EnableCORS {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"}
		router.Use(cors.New(corsConfig))
	}

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Inventory API is running!")
	})

	registerHealthRoutes(router, deps)
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	if deps.ProductService != nil {
		product.RegisterRoutes(router, deps.ProductService)
	}

	return router
}
