package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/lib/job"
	"github.com/deppfellow/lightbnb/internal/model"
)

const reservationDateLayout = "2006-01-02"

type ReservationService struct {
	reservations reservationStore
	users        userStore
	properties   propertyStore
	emails       EmailQueue
	logger       *zerolog.Logger
}

func NewReservationService(
	reservations reservationStore,
	users userStore,
	properties propertyStore,
	emails EmailQueue,
	logger *zerolog.Logger,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		users:        users,
		properties:   properties,
		emails:       emails,
		logger:       logger,
	}
}

// ListForGuest returns a guest's reservations, earliest first.
func (s *ReservationService) ListForGuest(ctx context.Context, guestID int64, limit int) ([]model.ReservationRow, error) {
	reservations, err := s.reservations.GetAllReservations(ctx, guestID, limit)
	if err != nil {
		return nil, err
	}
	if reservations == nil {
		reservations = []model.ReservationRow{}
	}
	return reservations, nil
}

// Create books a stay and queues the confirmation email.
func (s *ReservationService) Create(ctx context.Context, reservation model.NewReservation) (model.Reservation, error) {
	if !reservation.EndDate.After(reservation.StartDate) {
		code := "RESERVATION_INVALID"
		return model.Reservation{}, errs.NewBadRequestError(
			"End date must be after start date",
			true,
			&code,
			[]errs.FieldError{{Field: "end_date", Error: "must be after start_date"}},
			nil,
		)
	}

	created, err := s.reservations.AddReservation(ctx, reservation)
	if err != nil {
		return model.Reservation{}, err
	}

	s.queueConfirmation(ctx, created)
	return created, nil
}

// queueConfirmation is best effort: the booking already exists.
func (s *ReservationService) queueConfirmation(ctx context.Context, reservation model.Reservation) {
	if s.emails == nil {
		return
	}

	logger := s.logger.With().Int64("reservation_id", reservation.ID).Logger()

	guest, err := s.users.GetUserWithID(ctx, reservation.GuestID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load guest for confirmation email")
		return
	}

	property, err := s.properties.GetPropertyWithID(ctx, reservation.PropertyID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load property for confirmation email")
		return
	}

	err = s.emails.EnqueueReservationConfirmed(ctx, job.ReservationConfirmedPayload{
		To:            guest.Email,
		GuestName:     guest.Name,
		PropertyTitle: property.Title,
		StartDate:     reservation.StartDate.Format(reservationDateLayout),
		EndDate:       reservation.EndDate.Format(reservationDateLayout),
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to enqueue reservation confirmation")
	}
}
