package domain

import "errors"

var (
	// ErrInvalidFilter signals a malformed price range or rating option.
	ErrInvalidFilter = errors.New("invalid filter parameters")
	// ErrNoSearchTags signals that no searchable cuisine tag could be produced.
	ErrNoSearchTags = errors.New("no search tags")
	// ErrRestaurantNotFound signals a missing restaurant record.
	ErrRestaurantNotFound = errors.New("restaurant not found")
	// ErrStoreUnavailable signals a failed fetch or count against the data store.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrClassifierUnavailable signals an image classifier failure or a
	// malformed classifier response.
	ErrClassifierUnavailable = errors.New("classifier unavailable")
)
