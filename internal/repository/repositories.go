package repository

import (
	"github.com/deppfellow/lightbnb/internal/server"
)

// Repositories groups every repository so services receive one dependency.
type Repositories struct {
	Users        *UserRepository
	Properties   *PropertyRepository
	Reservations *ReservationRepository
	Reviews      *ReviewRepository
}

// NewRepositories builds the repositories on the server's executor.
func NewRepositories(s *server.Server) *Repositories {
	return newRepositories(s.DB.Executor())
}

func newRepositories(db DBTX) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db),
		Properties:   NewPropertyRepository(db),
		Reservations: NewReservationRepository(db),
		Reviews:      NewReviewRepository(db),
	}
}
