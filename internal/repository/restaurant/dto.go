package restaurant

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/dishcovery/internal/domain"
)

// recordDTO mirrors the stored document. The dataset export is not
// strict about scalar types (ratings and votes appear both as strings
// and as numbers), so the flexible wrappers absorb either form.
type recordDTO struct {
	ID            flexString  `json:"id"`
	Name          string      `json:"name"`
	Cuisines      string      `json:"cuisines"`
	Location      locationDTO `json:"location"`
	UserRating    ratingDTO   `json:"user_rating"`
	PriceRange    flexInt     `json:"price_range"`
	FeaturedImage string      `json:"featured_image"`
}

type locationDTO struct {
	Latitude  flexString `json:"latitude"`
	Longitude flexString `json:"longitude"`
	Address   string     `json:"address"`
	Locality  string     `json:"locality"`
	City      string     `json:"city"`
	Zipcode   flexString `json:"zipcode"`
	CountryID flexInt    `json:"country_id"`
}

type ratingDTO struct {
	AggregateRating flexFloat `json:"aggregate_rating"`
	Votes           flexInt   `json:"votes"`
	RatingText      string    `json:"rating_text"`
}

// parseRecord decodes a stored document into a domain record. FT.SEARCH
// may return the JSONPath result wrapped in a one-element array; the
// wrapper is stripped before decoding.
func parseRecord(doc []byte) (domain.RestaurantRecord, error) {
	doc = bytes.TrimSpace(doc)
	if len(doc) == 0 {
		return domain.RestaurantRecord{}, fmt.Errorf("empty document")
	}
	if doc[0] == '[' {
		var wrapped []json.RawMessage
		if err := json.Unmarshal(doc, &wrapped); err != nil {
			return domain.RestaurantRecord{}, fmt.Errorf("unwrap document: %w", err)
		}
		if len(wrapped) == 0 {
			return domain.RestaurantRecord{}, fmt.Errorf("empty document array")
		}
		doc = wrapped[0]
	}

	var dto recordDTO
	if err := json.Unmarshal(doc, &dto); err != nil {
		return domain.RestaurantRecord{}, fmt.Errorf("decode document: %w", err)
	}

	return domain.RestaurantRecord{
		ID:       string(dto.ID),
		Name:     dto.Name,
		Cuisines: dto.Cuisines,
		Location: domain.Location{
			Latitude:  string(dto.Location.Latitude),
			Longitude: string(dto.Location.Longitude),
			Address:   dto.Location.Address,
			Locality:  dto.Location.Locality,
			City:      dto.Location.City,
			Zipcode:   string(dto.Location.Zipcode),
			CountryID: int(dto.Location.CountryID),
		},
		UserRating: domain.UserRating{
			AggregateRating: float64(dto.UserRating.AggregateRating),
			Votes:           int(dto.UserRating.Votes),
			RatingText:      dto.UserRating.RatingText,
		},
		PriceRange:    int(dto.PriceRange),
		FeaturedImage: dto.FeaturedImage,
		Raw:           json.RawMessage(doc),
	}, nil
}

// flexString accepts JSON strings and numbers, keeping the textual form.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = ""
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = flexString(v)
		return nil
	}
	*f = flexString(s)
	return nil
}

// flexInt accepts JSON numbers and numeric strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(string(data), `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse int %q: %w", s, err)
	}
	*f = flexInt(int(v))
	return nil
}

// flexFloat accepts JSON numbers and numeric strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(string(data), `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse float %q: %w", s, err)
	}
	*f = flexFloat(v)
	return nil
}
