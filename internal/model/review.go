package model

// Review is a row of the property_reviews table.
type Review struct {
	ID            int64  `db:"id" json:"id"`
	GuestID       int64  `db:"guest_id" json:"guest_id"`
	PropertyID    int64  `db:"property_id" json:"property_id"`
	ReservationID int64  `db:"reservation_id" json:"reservation_id"`
	Rating        int16  `db:"rating" json:"rating"`
	Message       string `db:"message" json:"message"`
}

// NewReview carries the columns written by AddReview.
type NewReview struct {
	GuestID       int64
	PropertyID    int64
	ReservationID int64
	Rating        int16
	Message       string
}
