package model

// Property is a row of the properties table.
//
// CostPerNight is stored in minor currency units (cents).
type Property struct {
	ID                int64  `db:"id" json:"id"`
	OwnerID           int64  `db:"owner_id" json:"owner_id"`
	Title             string `db:"title" json:"title"`
	Description       string `db:"description" json:"description"`
	ThumbnailPhotoURL string `db:"thumbnail_photo_url" json:"thumbnail_photo_url"`
	CoverPhotoURL     string `db:"cover_photo_url" json:"cover_photo_url"`
	CostPerNight      int64  `db:"cost_per_night" json:"cost_per_night"`
	ParkingSpaces     int32  `db:"parking_spaces" json:"parking_spaces"`
	NumberOfBathrooms int32  `db:"number_of_bathrooms" json:"number_of_bathrooms"`
	NumberOfBedrooms  int32  `db:"number_of_bedrooms" json:"number_of_bedrooms"`
	Country           string `db:"country" json:"country"`
	Street            string `db:"street" json:"street"`
	City              string `db:"city" json:"city"`
	Province          string `db:"province" json:"province"`
	PostCode          string `db:"post_code" json:"post_code"`
	Active            bool   `db:"active" json:"active"`
}

// PropertyRow is a property merged with the mean rating of its reviews.
type PropertyRow struct {
	Property
	AverageRating float64 `db:"average_rating" json:"average_rating"`
}

// NewProperty carries the 14 columns written by AddProperty, in insert order.
type NewProperty struct {
	OwnerID           int64
	Title             string
	Description       string
	ThumbnailPhotoURL string
	CoverPhotoURL     string
	CostPerNight      int64
	Street            string
	City              string
	Province          string
	PostCode          string
	Country           string
	ParkingSpaces     int32
	NumberOfBathrooms int32
	NumberOfBedrooms  int32
}

// PropertySearchOptions is the sparse filter record of a property search.
//
// Every field is raw text as received from the client. An empty value
// means the field does not constrain the search.
type PropertySearchOptions struct {
	City                 string `query:"city" json:"city"`
	OwnerID              string `query:"owner_id" json:"owner_id"`
	MinimumPricePerNight string `query:"minimum_price_per_night" json:"minimum_price_per_night"`
	MaximumPricePerNight string `query:"maximum_price_per_night" json:"maximum_price_per_night"`
	MinimumRating        string `query:"minimum_rating" json:"minimum_rating"`
}
