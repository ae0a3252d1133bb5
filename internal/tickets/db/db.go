package db

import (
	"context"
	"ms-booking/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

// GetEnrollmentByUserID → fetch the enrollment belonging to a user
func (d *DB) GetEnrollmentByUserID(ctx context.Context, userID string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := d.Bun.NewSelect().
		Model(&enrollment).
		Where("user_id = ?", userID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// GetTicketByEnrollmentID → fetch a ticket with its type by enrollment
func (d *DB) GetTicketByEnrollmentID(ctx context.Context, enrollmentID string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := d.Bun.NewSelect().
		Model(&ticket).
		Relation("TicketType").
		Where("ticket.enrollment_id = ?", enrollmentID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetTicketByUserID → fetch a user's ticket by joining through enrollments
func (d *DB) GetTicketByUserID(ctx context.Context, userID string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := d.Bun.NewSelect().
		Model(&ticket).
		Relation("TicketType").
		Join("JOIN enrollments e ON e.id = ticket.enrollment_id").
		Where("e.user_id = ?", userID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}
