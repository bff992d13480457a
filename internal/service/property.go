package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
)

type PropertyService struct {
	properties propertyStore
}

func NewPropertyService(properties propertyStore) *PropertyService {
	return &PropertyService{properties: properties}
}

// Search lists properties matching opts, cheapest first.
func (s *PropertyService) Search(ctx context.Context, opts model.PropertySearchOptions, limit int) ([]model.PropertyRow, error) {
	properties, err := s.properties.GetAllProperties(ctx, opts, limit)
	if err != nil {
		return nil, err
	}
	if properties == nil {
		properties = []model.PropertyRow{}
	}
	return properties, nil
}

func (s *PropertyService) Get(ctx context.Context, id int64) (model.Property, error) {
	return s.properties.GetPropertyWithID(ctx, id)
}

func (s *PropertyService) Create(ctx context.Context, property model.NewProperty) (model.Property, error) {
	return s.properties.AddProperty(ctx, property)
}
