package service

import (
	"github.com/deppfellow/lightbnb/internal/repository"
	"github.com/deppfellow/lightbnb/internal/server"
)

// Services groups the business services handed to the HTTP layer.
type Services struct {
	Users        *UserService
	Properties   *PropertyService
	Reservations *ReservationService
	Reviews      *ReviewService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Users:        NewUserService(repos.Users, s.Job, s.Logger),
		Properties:   NewPropertyService(repos.Properties),
		Reservations: NewReservationService(repos.Reservations, repos.Users, repos.Properties, s.Job, s.Logger),
		Reviews:      NewReviewService(repos.Reviews),
	}, nil
}
