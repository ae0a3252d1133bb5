package models

import "github.com/uptrace/bun"

// Enrollment links an authenticated user to their personal data. Holding an
// enrollment is the precondition for owning a ticket.
type Enrollment struct {
	bun.BaseModel `bun:"table:enrollments"`

	ID     string `bun:"id,pk" json:"id"`
	UserID string `bun:"user_id,notnull,unique" json:"userId"`
	Name   string `bun:"name,notnull" json:"name"`
}
