package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/sqlerr"
)

const reservationsTable = "reservations"

type ReservationRepository struct {
	db DBTX
}

func NewReservationRepository(db DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// GetAllReservations lists a guest's reservations with their property and
// its average rating, earliest start date first.
func (r *ReservationRepository) GetAllReservations(ctx context.Context, guestID int64, limit int) ([]model.ReservationRow, error) {
	rows, err := r.db.Query(ctx, `
	SELECT reservations.id, reservations.start_date, reservations.end_date, reservations.guest_id,
		properties.id AS property_id, properties.title, properties.thumbnail_photo_url, properties.city,
		properties.cost_per_night, properties.number_of_bedrooms, properties.number_of_bathrooms,
		properties.parking_spaces, avg(property_reviews.rating) AS average_rating
	FROM reservations
	JOIN properties ON reservations.property_id = properties.id
	JOIN property_reviews ON property_reviews.property_id = properties.id
	WHERE reservations.guest_id = $1
	GROUP BY properties.id, reservations.id
	ORDER BY reservations.start_date
	LIMIT $2;
	`, guestID, normalizeLimit(limit))
	if err != nil {
		return nil, sqlerr.Wrap(err, reservationsTable)
	}

	reservations, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.ReservationRow])
	if err != nil {
		return nil, sqlerr.Wrap(err, reservationsTable)
	}

	return reservations, nil
}

// AddReservation inserts a reservation and returns the created row.
func (r *ReservationRepository) AddReservation(ctx context.Context, reservation model.NewReservation) (model.Reservation, error) {
	rows, err := r.db.Query(ctx, `
	INSERT INTO reservations (start_date, end_date, property_id, guest_id)
	VALUES ($1, $2, $3, $4)
	RETURNING id, start_date, end_date, property_id, guest_id;
	`, reservation.StartDate, reservation.EndDate, reservation.PropertyID, reservation.GuestID)
	if err != nil {
		return model.Reservation{}, sqlerr.Wrap(err, reservationsTable)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Reservation])
	if err != nil {
		return model.Reservation{}, sqlerr.Wrap(err, reservationsTable)
	}

	return created, nil
}
