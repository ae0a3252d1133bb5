package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Hotel struct {
	bun.BaseModel `bun:"table:hotels"`

	ID        string    `bun:"id,pk" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Image     string    `bun:"image,nullzero" json:"image,omitempty"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`

	Rooms []Room `bun:"rel:has-many,join:id=hotel_id" json:"Rooms,omitempty"`
}

type Room struct {
	bun.BaseModel `bun:"table:rooms"`

	ID       string `bun:"id,pk" json:"id"`
	HotelID  string `bun:"hotel_id,notnull" json:"hotelId"`
	Name     string `bun:"name,notnull" json:"name"`
	Capacity int    `bun:"capacity,notnull" json:"capacity"`

	Hotel *Hotel `bun:"rel:belongs-to,join:hotel_id=id" json:"-"`
}
