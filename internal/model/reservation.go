package model

import "time"

// Reservation is a row of the reservations table.
type Reservation struct {
	ID         int64     `db:"id" json:"id"`
	StartDate  time.Time `db:"start_date" json:"start_date"`
	EndDate    time.Time `db:"end_date" json:"end_date"`
	PropertyID int64     `db:"property_id" json:"property_id"`
	GuestID    int64     `db:"guest_id" json:"guest_id"`
}

// NewReservation carries the columns written by AddReservation.
type NewReservation struct {
	StartDate  time.Time
	EndDate    time.Time
	PropertyID int64
	GuestID    int64
}

// ReservationRow is a reservation joined to its property and the
// property's mean review rating.
type ReservationRow struct {
	ID                int64     `db:"id" json:"id"`
	StartDate         time.Time `db:"start_date" json:"start_date"`
	EndDate           time.Time `db:"end_date" json:"end_date"`
	GuestID           int64     `db:"guest_id" json:"guest_id"`
	PropertyID        int64     `db:"property_id" json:"property_id"`
	Title             string    `db:"title" json:"title"`
	ThumbnailPhotoURL string    `db:"thumbnail_photo_url" json:"thumbnail_photo_url"`
	City              string    `db:"city" json:"city"`
	CostPerNight      int64     `db:"cost_per_night" json:"cost_per_night"`
	NumberOfBedrooms  int32     `db:"number_of_bedrooms" json:"number_of_bedrooms"`
	NumberOfBathrooms int32     `db:"number_of_bathrooms" json:"number_of_bathrooms"`
	ParkingSpaces     int32     `db:"parking_spaces" json:"parking_spaces"`
	AverageRating     float64   `db:"average_rating" json:"average_rating"`
}
