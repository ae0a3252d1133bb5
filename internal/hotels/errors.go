package hotels

import "errors"

var (
	// ErrNotFound covers a missing enrollment, an empty catalog, or an
	// unknown hotel id.
	ErrNotFound = errors.New("hotels: not found")

	// ErrCannotListHotels is the catalog-specific denial: the user's ticket
	// (or its absence) does not grant access to the hotel catalog. Kept
	// distinct from a generic forbidden so the transport can map it to its
	// own status code.
	ErrCannotListHotels = errors.New("hotels: ticket does not grant hotel access")
)
