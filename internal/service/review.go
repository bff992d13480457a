package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
)

type ReviewService struct {
	reviews reviewStore
}

func NewReviewService(reviews reviewStore) *ReviewService {
	return &ReviewService{reviews: reviews}
}

func (s *ReviewService) ListForProperty(ctx context.Context, propertyID int64, limit int) ([]model.Review, error) {
	reviews, err := s.reviews.ListReviewsByProperty(ctx, propertyID, limit)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return reviews, nil
}

func (s *ReviewService) Create(ctx context.Context, review model.NewReview) (model.Review, error) {
	return s.reviews.AddReview(ctx, review)
}
