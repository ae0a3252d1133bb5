package models

import (
	"time"

	"github.com/uptrace/bun"
)

type BookingRequest struct {
	RoomID string `json:"roomId"`
}

type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	ID        string    `bun:"id,pk" json:"id"`
	UserID    string    `bun:"user_id,notnull,unique" json:"userId"`
	RoomID    string    `bun:"room_id,notnull" json:"roomId"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero" json:"updatedAt,omitempty"`

	Room *Room `bun:"rel:belongs-to,join:room_id=id" json:"Room,omitempty"`
}

// BookingResponse is the payload returned by GET /booking: the booking id
// plus the full room the user is assigned to.
type BookingResponse struct {
	ID   string `json:"id"`
	Room *Room  `json:"Room"`
}
