package domain

import "encoding/json"

// RestaurantRecord is a single restaurant as stored in the dataset.
// IDs are externally assigned and may repeat across the collection,
// so they are never used as storage keys.
type RestaurantRecord struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Cuisines      string     `json:"cuisines"`
	Location      Location   `json:"location"`
	UserRating    UserRating `json:"user_rating"`
	PriceRange    int        `json:"price_range"`
	FeaturedImage string     `json:"featured_image,omitempty"`

	// Distance is a transient per-request augmentation in kilometers.
	// nil means the distance is unknown (no reference point, or the
	// record coordinates did not parse). Never persisted.
	Distance *float64 `json:"distance,omitempty"`

	// Raw is the full stored document including passthrough fields the
	// core does not model. Populated on single-record reads only.
	Raw json.RawMessage `json:"-"`
}

// Location holds record coordinates and address fields. Latitude and
// longitude are kept as strings: the dataset export stores them that
// way and unparseable values must degrade to "distance unknown"
// rather than fail the record.
type Location struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	Address   string `json:"address,omitempty"`
	Locality  string `json:"locality,omitempty"`
	City      string `json:"city,omitempty"`
	Zipcode   string `json:"zipcode,omitempty"`
	CountryID int    `json:"country_id,omitempty"`
}

// UserRating holds aggregate rating data for a restaurant.
type UserRating struct {
	AggregateRating float64 `json:"aggregate_rating"`
	Votes           int     `json:"votes"`
	RatingText      string  `json:"rating_text,omitempty"`
}
