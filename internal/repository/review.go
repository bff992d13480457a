package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/sqlerr"
)

const reviewsTable = "property_reviews"

type ReviewRepository struct {
	db DBTX
}

func NewReviewRepository(db DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ListReviewsByProperty returns the newest reviews of a property first.
func (r *ReviewRepository) ListReviewsByProperty(ctx context.Context, propertyID int64, limit int) ([]model.Review, error) {
	rows, err := r.db.Query(ctx, `
	SELECT id, guest_id, property_id, reservation_id, rating, message
	FROM property_reviews
	WHERE property_id = $1
	ORDER BY id DESC
	LIMIT $2;
	`, propertyID, normalizeLimit(limit))
	if err != nil {
		return nil, sqlerr.Wrap(err, reviewsTable)
	}

	reviews, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Review])
	if err != nil {
		return nil, sqlerr.Wrap(err, reviewsTable)
	}

	return reviews, nil
}

// AddReview inserts a review and returns the created row.
func (r *ReviewRepository) AddReview(ctx context.Context, review model.NewReview) (model.Review, error) {
	rows, err := r.db.Query(ctx, `
	INSERT INTO property_reviews (guest_id, property_id, reservation_id, rating, message)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, guest_id, property_id, reservation_id, rating, message;
	`, review.GuestID, review.PropertyID, review.ReservationID, review.Rating, review.Message)
	if err != nil {
		return model.Review{}, sqlerr.Wrap(err, reviewsTable)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Review])
	if err != nil {
		return model.Review{}, sqlerr.Wrap(err, reviewsTable)
	}

	return created, nil
}
