// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/flatchores/internal/handler"
	"github.com/deppfellow/flatchores/internal/middleware"
	"github.com/deppfellow/flatchores/internal/server"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
)

const metricsSubsystem = "flatchores"

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(handler.AlertHeaders...),
		middlewares.RateLimit.Limit(),
		echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem: metricsSubsystem,
			Registerer: s.Metrics,
		}),
	)

	registerSystemRoutes(router, s, h)

	api := router.Group("/api")
	h.Flats.Register(api.Group("/" + h.Flats.Route()))
	h.Badges.Register(api.Group("/" + h.Badges.Route()))
	h.TypeOfBadges.Register(api.Group("/" + h.TypeOfBadges.Route()))
	h.TypeOfChores.Register(api.Group("/" + h.TypeOfChores.Route()))
	h.Chores.Register(api.Group("/" + h.Chores.Route()))

	return router
}
