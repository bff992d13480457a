package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/validation"
)

type reviewService interface {
	ListForProperty(ctx context.Context, propertyID int64, limit int) ([]model.Review, error)
	Create(ctx context.Context, review model.NewReview) (model.Review, error)
}

type ReviewHandler struct {
	Handler
	reviews reviewService
}

func NewReviewHandler(h Handler, reviews reviewService) *ReviewHandler {
	return &ReviewHandler{Handler: h, reviews: reviews}
}

type ListReviewsRequest struct {
	PropertyID int64 `param:"id" json:"-" validate:"gt=0"`
	Limit      int   `query:"limit" validate:"min=0,max=100"`
}

func (r *ListReviewsRequest) Validate() error {
	return validation.Struct(r)
}

type ReviewsResponse struct {
	Reviews []model.Review `json:"reviews"`
}

func (r ReviewsResponse) Len() int { return len(r.Reviews) }

func (h *ReviewHandler) ListReviews(c echo.Context, req *ListReviewsRequest) (ReviewsResponse, error) {
	reviews, err := h.reviews.ListForProperty(c.Request().Context(), req.PropertyID, req.Limit)
	if err != nil {
		return ReviewsResponse{}, err
	}
	return ReviewsResponse{Reviews: reviews}, nil
}

type CreateReviewRequest struct {
	PropertyID    int64  `param:"id" json:"-" validate:"gt=0"`
	GuestID       int64  `json:"guest_id" validate:"required,gt=0"`
	ReservationID int64  `json:"reservation_id" validate:"required,gt=0"`
	Rating        int16  `json:"rating" validate:"required,min=1,max=5"`
	Message       string `json:"message" validate:"max=2000"`
}

func (r *CreateReviewRequest) Validate() error {
	return validation.Struct(r)
}

func (h *ReviewHandler) CreateReview(c echo.Context, req *CreateReviewRequest) (model.Review, error) {
	return h.reviews.Create(c.Request().Context(), model.NewReview{
		GuestID:       req.GuestID,
		PropertyID:    req.PropertyID,
		ReservationID: req.ReservationID,
		Rating:        req.Rating,
		Message:       req.Message,
	})
}
