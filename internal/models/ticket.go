package models

import "github.com/uptrace/bun"

const (
	TicketStatusReserved = "RESERVED"
	TicketStatusPaid     = "PAID"
)

type TicketType struct {
	bun.BaseModel `bun:"table:ticket_types"`

	ID            string  `bun:"id,pk" json:"id"`
	Name          string  `bun:"name,notnull" json:"name"`
	Price         float64 `bun:"price,notnull" json:"price"`
	IsRemote      bool    `bun:"is_remote,notnull" json:"isRemote"`
	IncludesHotel bool    `bun:"includes_hotel,notnull" json:"includesHotel"`
}

type Ticket struct {
	bun.BaseModel `bun:"table:tickets"`

	ID           string `bun:"id,pk" json:"id"`
	EnrollmentID string `bun:"enrollment_id,notnull,unique" json:"enrollmentId"`
	TicketTypeID string `bun:"ticket_type_id,notnull" json:"ticketTypeId"`
	Status       string `bun:"status,notnull" json:"status"`

	TicketType *TicketType `bun:"rel:belongs-to,join:ticket_type_id=id" json:"TicketType,omitempty"`
}

// HotelEligible reports whether the ticket entitles its holder to a room:
// the ticket must be paid for, in-person, and include lodging.
func (t *Ticket) HotelEligible() bool {
	if t == nil || t.TicketType == nil {
		return false
	}
	return t.Status == TicketStatusPaid && !t.TicketType.IsRemote && t.TicketType.IncludesHotel
}
