package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/metrics"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// Deps are the collaborators the route table is built from. Images may be
// nil, in which case the upload route is not mounted.
type Deps struct {
	Logger          *logrus.Logger
	Metrics         *metrics.Metrics
	Store           api.Pinger
	Catalog         service.ICatalogService
	Recommendations service.IRecommendationService
	Auth            service.IAuthService
	Images          service.IImageService
	AllowedOrigins  []string
	Cookie          api.CookieOptions
}

// SetupRouter configures the application routes
func SetupRouter(deps Deps) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(deps.Logger),
		middleware.RequestLogger(deps.Logger),
		middleware.CORS(deps.AllowedOrigins),
	)
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	router.GET("/health", api.HealthCheck(deps.Store))

	requireAuth := middleware.AuthMiddleware(deps.Auth, deps.Cookie.Name)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.GET("/health", api.HealthCheck(deps.Store))

	api.NewAuthHandler(deps.Auth, deps.Cookie).RegisterRoutes(v1, requireAuth)
	api.NewCatalogHandler(deps.Catalog, deps.Recommendations).RegisterRoutes(v1, requireAuth)
	if deps.Images != nil {
		api.NewImageHandler(deps.Images).RegisterRoutes(v1, requireAuth)
	}

	return router
}
