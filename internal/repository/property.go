package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/sqlerr"
)

const propertiesTable = "properties"

type PropertyRepository struct {
	db DBTX
}

func NewPropertyRepository(db DBTX) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// GetAllProperties runs the search built by BuildPropertySearchQuery.
// No match is an empty slice, not an error.
func (r *PropertyRepository) GetAllProperties(ctx context.Context, opts model.PropertySearchOptions, limit int) ([]model.PropertyRow, error) {
	plan, err := BuildPropertySearchQuery(opts, limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, plan.SQL, plan.Args...)
	if err != nil {
		return nil, sqlerr.Wrap(err, propertiesTable)
	}

	properties, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.PropertyRow])
	if err != nil {
		return nil, sqlerr.Wrap(err, propertiesTable)
	}

	return properties, nil
}

// AddProperty inserts a property and returns the created row.
func (r *PropertyRepository) AddProperty(ctx context.Context, property model.NewProperty) (model.Property, error) {
	rows, err := r.db.Query(ctx, `
	INSERT INTO properties (owner_id, title, description, thumbnail_photo_url, cover_photo_url, cost_per_night, street, city, province, post_code, country, parking_spaces, number_of_bathrooms, number_of_bedrooms)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	RETURNING *;
	`,
		property.OwnerID,
		property.Title,
		property.Description,
		property.ThumbnailPhotoURL,
		property.CoverPhotoURL,
		property.CostPerNight,
		property.Street,
		property.City,
		property.Province,
		property.PostCode,
		property.Country,
		property.ParkingSpaces,
		property.NumberOfBathrooms,
		property.NumberOfBedrooms,
	)
	if err != nil {
		return model.Property{}, sqlerr.Wrap(err, propertiesTable)
	}

	created, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Property])
	if err != nil {
		return model.Property{}, sqlerr.Wrap(err, propertiesTable)
	}

	return created, nil
}

// GetPropertyWithID returns a single property by id.
// A missing property is a sqlerr NotFound error.
func (r *PropertyRepository) GetPropertyWithID(ctx context.Context, id int64) (model.Property, error) {
	rows, err := r.db.Query(ctx, `
	SELECT *
	FROM properties
	WHERE id = $1;
	`, id)
	if err != nil {
		return model.Property{}, sqlerr.Wrap(err, propertiesTable)
	}

	property, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Property])
	if err != nil {
		return model.Property{}, sqlerr.Wrap(err, propertiesTable)
	}

	return property, nil
}
