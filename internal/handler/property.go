package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/validation"
)

type propertyService interface {
	Search(ctx context.Context, opts model.PropertySearchOptions, limit int) ([]model.PropertyRow, error)
	Get(ctx context.Context, id int64) (model.Property, error)
	Create(ctx context.Context, property model.NewProperty) (model.Property, error)
}

type PropertyHandler struct {
	Handler
	properties propertyService
}

func NewPropertyHandler(h Handler, properties propertyService) *PropertyHandler {
	return &PropertyHandler{Handler: h, properties: properties}
}

// SearchPropertiesRequest carries the search filters as query parameters.
// Filter values are checked by the query builder, which knows their rules.
type SearchPropertiesRequest struct {
	City                 string `query:"city"`
	OwnerID              string `query:"owner_id"`
	MinimumPricePerNight string `query:"minimum_price_per_night"`
	MaximumPricePerNight string `query:"maximum_price_per_night"`
	MinimumRating        string `query:"minimum_rating"`
	Limit                int    `query:"limit" validate:"min=0,max=100"`
}

func (r *SearchPropertiesRequest) Validate() error {
	return validation.Struct(r)
}

type PropertiesResponse struct {
	Properties []model.PropertyRow `json:"properties"`
}

func (r PropertiesResponse) Len() int { return len(r.Properties) }

func (h *PropertyHandler) SearchProperties(c echo.Context, req *SearchPropertiesRequest) (PropertiesResponse, error) {
	properties, err := h.properties.Search(c.Request().Context(), model.PropertySearchOptions{
		City:                 req.City,
		OwnerID:              req.OwnerID,
		MinimumPricePerNight: req.MinimumPricePerNight,
		MaximumPricePerNight: req.MaximumPricePerNight,
		MinimumRating:        req.MinimumRating,
	}, req.Limit)
	if err != nil {
		return PropertiesResponse{}, err
	}

	return PropertiesResponse{Properties: properties}, nil
}

type GetPropertyRequest struct {
	ID int64 `param:"id" json:"-" validate:"gt=0"`
}

func (r *GetPropertyRequest) Validate() error {
	return validation.Struct(r)
}

func (h *PropertyHandler) GetProperty(c echo.Context, req *GetPropertyRequest) (model.Property, error) {
	return h.properties.Get(c.Request().Context(), req.ID)
}

// CreatePropertyRequest is the listing form. cost_per_night is in cents.
type CreatePropertyRequest struct {
	OwnerID           int64  `json:"owner_id" validate:"required,gt=0"`
	Title             string `json:"title" validate:"required,max=255"`
	Description       string `json:"description" validate:"required"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" validate:"required,url,max=255"`
	CoverPhotoURL     string `json:"cover_photo_url" validate:"required,url,max=255"`
	CostPerNight      int64  `json:"cost_per_night" validate:"required,gt=0"`
	Street            string `json:"street" validate:"required,max=255"`
	City              string `json:"city" validate:"required,max=255"`
	Province          string `json:"province" validate:"required,max=255"`
	PostCode          string `json:"post_code" validate:"required,max=255"`
	Country           string `json:"country" validate:"required,max=255"`
	ParkingSpaces     int32  `json:"parking_spaces" validate:"min=0"`
	NumberOfBathrooms int32  `json:"number_of_bathrooms" validate:"min=0"`
	NumberOfBedrooms  int32  `json:"number_of_bedrooms" validate:"min=0"`
}

func (r *CreatePropertyRequest) Validate() error {
	return validation.Struct(r)
}

func (h *PropertyHandler) CreateProperty(c echo.Context, req *CreatePropertyRequest) (model.Property, error) {
	return h.properties.Create(c.Request().Context(), model.NewProperty{
		OwnerID:           req.OwnerID,
		Title:             req.Title,
		Description:       req.Description,
		ThumbnailPhotoURL: req.ThumbnailPhotoURL,
		CoverPhotoURL:     req.CoverPhotoURL,
		CostPerNight:      req.CostPerNight,
		Street:            req.Street,
		City:              req.City,
		Province:          req.Province,
		PostCode:          req.PostCode,
		Country:           req.Country,
		ParkingSpaces:     req.ParkingSpaces,
		NumberOfBathrooms: req.NumberOfBathrooms,
		NumberOfBedrooms:  req.NumberOfBedrooms,
	})
}
