// Package router builds the echo instance: global middleware in order,
// system routes and the versioned API.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/lightbnb/internal/handler"
	"github.com/deppfellow/lightbnb/internal/middleware"
	"github.com/deppfellow/lightbnb/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id and the New Relic transaction must exist
	// before the context enhancer builds the request logger.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Observe(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)

	v1 := router.Group("/api/v1")
	registerPropertyRoutes(v1, h)
	registerUserRoutes(v1, h, middlewares.RateLimit)
	registerReservationRoutes(v1, h)

	return router
}

func registerPropertyRoutes(g *echo.Group, h *handler.Handlers) {
	properties := g.Group("/properties")

	properties.GET("", handler.Handle(h.Properties.Handler, h.Properties.SearchProperties, http.StatusOK, &handler.SearchPropertiesRequest{}))
	properties.POST("", handler.Handle(h.Properties.Handler, h.Properties.CreateProperty, http.StatusCreated, &handler.CreatePropertyRequest{}))
	properties.GET("/:id", handler.Handle(h.Properties.Handler, h.Properties.GetProperty, http.StatusOK, &handler.GetPropertyRequest{}))

	properties.GET("/:id/reviews", handler.Handle(h.Reviews.Handler, h.Reviews.ListReviews, http.StatusOK, &handler.ListReviewsRequest{}))
	properties.POST("/:id/reviews", handler.Handle(h.Reviews.Handler, h.Reviews.CreateReview, http.StatusCreated, &handler.CreateReviewRequest{}))
}

func registerUserRoutes(g *echo.Group, h *handler.Handlers, limits *middleware.RateLimitMiddleware) {
	users := g.Group("/users")

	authLimiter := limits.AuthLimiter()
	users.POST("", handler.Handle(h.Users.Handler, h.Users.Register, http.StatusCreated, &handler.RegisterRequest{}), authLimiter)
	users.POST("/login", handler.Handle(h.Users.Handler, h.Users.Login, http.StatusOK, &handler.LoginRequest{}), authLimiter)

	users.GET("/:id", handler.Handle(h.Users.Handler, h.Users.GetUser, http.StatusOK, &handler.GetUserRequest{}))
	users.GET("/:id/reservations", handler.Handle(h.Users.Handler, h.Users.ListReservations, http.StatusOK, &handler.ListReservationsRequest{}))
}

func registerReservationRoutes(g *echo.Group, h *handler.Handlers) {
	g.POST("/reservations", handler.Handle(h.Reservations.Handler, h.Reservations.CreateReservation, http.StatusCreated, &handler.CreateReservationRequest{}))
}
