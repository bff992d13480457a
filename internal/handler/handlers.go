package handler

import (
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/deppfellow/lightbnb/internal/service"
)

// Handlers groups every HTTP handler for the router.
type Handlers struct {
	Health       *HealthHandler
	OpenAPI      *OpenAPIHandler
	Properties   *PropertyHandler
	Users        *UserHandler
	Reservations *ReservationHandler
	Reviews      *ReviewHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	base := NewHandler(s)

	return &Handlers{
		Health:       NewHealthHandler(s),
		OpenAPI:      NewOpenAPIHandler(s),
		Properties:   NewPropertyHandler(base, services.Properties),
		Users:        NewUserHandler(base, services.Users, services.Reservations),
		Reservations: NewReservationHandler(base, services.Reservations),
		Reviews:      NewReviewHandler(base, services.Reviews),
	}
}
