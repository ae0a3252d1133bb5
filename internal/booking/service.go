package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"ms-booking/internal/logger"
	"ms-booking/internal/models"
)

type DBLayer interface {
	GetBookingByUser(ctx context.Context, userID string) (*models.Booking, error)
	GetRoomByID(ctx context.Context, roomID string) (*models.Room, error)
	GetBookingsByRoom(ctx context.Context, roomID string) ([]models.Booking, error)
	ReserveRoom(ctx context.Context, roomID, userID string) (*models.Booking, error)
	MoveBooking(ctx context.Context, bookingID, roomID string) (*models.Booking, error)
}

type TicketLayer interface {
	GetTicketByUserID(ctx context.Context, userID string) (*models.Ticket, error)
}

type EventPublisher interface {
	PublishBookingCreated(booking models.Booking) error
	PublishBookingUpdated(booking models.Booking) error
}

// BookingService decides whether a room assignment is allowed: ticket
// eligibility, room capacity, and booking ownership. The capacity check
// itself runs inside the storage layer's transaction (ReserveRoom /
// MoveBooking) so that two requests racing for the last slot cannot both
// succeed.
type BookingService struct {
	DB      DBLayer
	Tickets TicketLayer
	Events  EventPublisher
	Logger  *logger.Logger
}

func NewBookingService(db DBLayer, tickets TicketLayer, events EventPublisher, log *logger.Logger) *BookingService {
	return &BookingService{DB: db, Tickets: tickets, Events: events, Logger: log}
}

// GetBooking returns the caller's booking together with its room.
func (s *BookingService) GetBooking(ctx context.Context, userID string) (*models.Booking, error) {
	if userID == "" {
		return nil, ErrNotFound
	}

	b, err := s.DB.GetBookingByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no booking for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch booking: %w", err)
	}
	return b, nil
}

// CreateBooking runs admission control and reserves the room for the user.
// Checks run in order: ticket eligibility, then room existence and capacity
// (the latter two atomically with the insert).
func (s *BookingService) CreateBooking(ctx context.Context, roomID, userID string) (*models.Booking, error) {
	if roomID == "" || userID == "" {
		return nil, ErrNotFound
	}

	ticket, err := s.Tickets.GetTicketByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no ticket for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch ticket: %w", err)
	}

	if !ticket.HotelEligible() {
		return nil, fmt.Errorf("ticket %s does not grant lodging: %w", ticket.ID, ErrForbidden)
	}

	b, err := s.DB.ReserveRoom(ctx, roomID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("room %s does not exist: %w", roomID, ErrNotFound)
		}
		return nil, err
	}

	s.publish("created", *b, func(bk models.Booking) error { return s.Events.PublishBookingCreated(bk) })

	return b, nil
}

// UpdateBooking moves the caller's booking to another room. The caller may
// only move their own booking; the target room must exist and have a free
// slot.
func (s *BookingService) UpdateBooking(ctx context.Context, roomID, userID, bookingID string) (*models.Booking, error) {
	if roomID == "" || userID == "" || bookingID == "" {
		return nil, ErrNotFound
	}

	current, err := s.DB.GetBookingByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s has no booking to update: %w", userID, ErrForbidden)
		}
		return nil, fmt.Errorf("fetch booking: %w", err)
	}

	if _, err := s.DB.GetRoomByID(ctx, roomID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("room %s does not exist: %w", roomID, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch room: %w", err)
	}

	if current.ID != bookingID {
		return nil, fmt.Errorf("booking %s does not belong to user %s: %w", bookingID, userID, ErrForbidden)
	}

	// The room is re-read and the capacity re-checked inside the transaction;
	// the lookup above only pins down the error ordering.
	b, err := s.DB.MoveBooking(ctx, bookingID, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("room %s does not exist: %w", roomID, ErrNotFound)
		}
		return nil, err
	}

	s.publish("updated", *b, func(bk models.Booking) error { return s.Events.PublishBookingUpdated(bk) })

	return b, nil
}

// publish sends a lifecycle event best-effort: a broker failure is logged
// and never fails the request.
func (s *BookingService) publish(action string, b models.Booking, fn func(models.Booking) error) {
	if s.Events == nil {
		return
	}
	if err := fn(b); err != nil {
		if s.Logger != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("publish booking %s (%s): %v", action, b.ID, err))
		}
	}
}
