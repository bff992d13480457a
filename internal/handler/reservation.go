package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/validation"
)

const dateLayout = "2006-01-02"

type reservationService interface {
	Create(ctx context.Context, reservation model.NewReservation) (model.Reservation, error)
}

type ReservationHandler struct {
	Handler
	reservations reservationService
}

func NewReservationHandler(h Handler, reservations reservationService) *ReservationHandler {
	return &ReservationHandler{Handler: h, reservations: reservations}
}

// CreateReservationRequest takes dates as YYYY-MM-DD.
type CreateReservationRequest struct {
	GuestID    int64  `json:"guest_id" validate:"required,gt=0"`
	PropertyID int64  `json:"property_id" validate:"required,gt=0"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`

	start time.Time
	end   time.Time
}

func (r *CreateReservationRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	// Both parse: the datetime tag checked the layout.
	r.start, _ = time.Parse(dateLayout, r.StartDate)
	r.end, _ = time.Parse(dateLayout, r.EndDate)

	if !r.end.After(r.start) {
		return validation.CustomValidationErrors{
			{Field: "end_date", Message: "must be after start_date"},
		}
	}
	return nil
}

func (h *ReservationHandler) CreateReservation(c echo.Context, req *CreateReservationRequest) (model.Reservation, error) {
	return h.reservations.Create(c.Request().Context(), model.NewReservation{
		StartDate:  req.start,
		EndDate:    req.end,
		PropertyID: req.PropertyID,
		GuestID:    req.GuestID,
	})
}
