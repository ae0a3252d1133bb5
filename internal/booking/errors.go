package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers missing entities and missing/invalid input ids.
	ErrNotFound = errors.New("booking: not found")

	// ErrForbidden covers business-rule denials: ineligible ticket, room at
	// capacity, caller is not the booking's owner.
	ErrForbidden = errors.New("booking: forbidden")

	// ErrRoomFull is returned by the storage layer when a reservation would
	// exceed the room's capacity. It unwraps to ErrForbidden.
	ErrRoomFull = fmt.Errorf("room is at capacity: %w", ErrForbidden)
)
