// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// input from handlers, applies the booking rules, calls repositories and
// schedules background work.
package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/lib/job"
	"github.com/deppfellow/lightbnb/internal/model"
)

type userStore interface {
	GetUserWithEmail(ctx context.Context, email string) (model.User, error)
	GetUserWithID(ctx context.Context, id int64) (model.User, error)
	AddUser(ctx context.Context, user model.NewUser) (model.User, error)
}

type propertyStore interface {
	GetAllProperties(ctx context.Context, opts model.PropertySearchOptions, limit int) ([]model.PropertyRow, error)
	GetPropertyWithID(ctx context.Context, id int64) (model.Property, error)
	AddProperty(ctx context.Context, property model.NewProperty) (model.Property, error)
}

type reservationStore interface {
	GetAllReservations(ctx context.Context, guestID int64, limit int) ([]model.ReservationRow, error)
	AddReservation(ctx context.Context, reservation model.NewReservation) (model.Reservation, error)
}

type reviewStore interface {
	ListReviewsByProperty(ctx context.Context, propertyID int64, limit int) ([]model.Review, error)
	AddReview(ctx context.Context, review model.NewReview) (model.Review, error)
}

// EmailQueue schedules transactional email. *job.JobService implements it.
type EmailQueue interface {
	EnqueueWelcomeEmail(ctx context.Context, to, name string) error
	EnqueueReservationConfirmed(ctx context.Context, p job.ReservationConfirmedPayload) error
}
