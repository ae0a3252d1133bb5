package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/uptrace/bun"

	"ms-booking/internal/booking"
	"ms-booking/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// GetBookingByUser → fetch the user's booking with its room loaded
func (d *DB) GetBookingByUser(ctx context.Context, userID string) (*models.Booking, error) {
	var b models.Booking
	err := d.Bun.NewSelect().
		Model(&b).
		Relation("Room").
		Where("booking.user_id = ?", userID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetRoomByID → fetch one room by its ID
func (d *DB) GetRoomByID(ctx context.Context, roomID string) (*models.Room, error) {
	var room models.Room
	err := d.Bun.NewSelect().
		Model(&room).
		Where("id = ?", roomID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetBookingsByRoom → fetch all bookings referencing a room
func (d *DB) GetBookingsByRoom(ctx context.Context, roomID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := d.Bun.NewSelect().
		Model(&bookings).
		Where("room_id = ?", roomID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// ReserveRoom inserts a booking for the user if the room still has a free
// slot. Room lookup, occupancy count and insert run in one serializable
// transaction, so concurrent requests against the last slot cannot all
// succeed. Returns sql.ErrNoRows when the room does not exist and
// booking.ErrRoomFull when it is at capacity.
func (d *DB) ReserveRoom(ctx context.Context, roomID, userID string) (*models.Booking, error) {
	var created *models.Booking

	err := d.inSerializableTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var room models.Room
		if err := tx.NewSelect().
			Model(&room).
			Where("id = ?", roomID).
			Limit(1).
			Scan(ctx); err != nil {
			return err
		}

		occupied, err := tx.NewSelect().
			Model((*models.Booking)(nil)).
			Where("room_id = ?", roomID).
			Count(ctx)
		if err != nil {
			return err
		}
		if occupied >= room.Capacity {
			return booking.ErrRoomFull
		}

		b := &models.Booking{
			ID:        uuid.NewString(),
			UserID:    userID,
			RoomID:    roomID,
			CreatedAt: time.Now().UTC(),
		}
		if _, err := tx.NewInsert().Model(b).Exec(ctx); err != nil {
			return err
		}
		b.Room = &room
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// MoveBooking reassigns an existing booking to another room, re-checking the
// target room's capacity in the same transaction. The booking's own row is
// excluded from the count so that a move within the same room is a no-op
// rather than a capacity violation.
func (d *DB) MoveBooking(ctx context.Context, bookingID, roomID string) (*models.Booking, error) {
	var moved *models.Booking

	err := d.inSerializableTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var room models.Room
		if err := tx.NewSelect().
			Model(&room).
			Where("id = ?", roomID).
			Limit(1).
			Scan(ctx); err != nil {
			return err
		}

		occupied, err := tx.NewSelect().
			Model((*models.Booking)(nil)).
			Where("room_id = ?", roomID).
			Where("id != ?", bookingID).
			Count(ctx)
		if err != nil {
			return err
		}
		if occupied >= room.Capacity {
			return booking.ErrRoomFull
		}

		b := models.Booking{
			ID:        bookingID,
			RoomID:    roomID,
			UpdatedAt: time.Now().UTC(),
		}
		res, err := tx.NewUpdate().
			Model(&b).
			Column("room_id", "updated_at").
			Where("id = ?", bookingID).
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return sql.ErrNoRows
		}

		if err := tx.NewSelect().
			Model(&b).
			Where("id = ?", bookingID).
			Limit(1).
			Scan(ctx); err != nil {
			return err
		}
		b.Room = &room
		moved = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// inSerializableTx runs fn in a serializable transaction, retrying once when
// Postgres aborts the transaction with a serialization failure. The retry
// re-runs the capacity check, so a loser of the race sees the room as full
// instead of a driver error.
func (d *DB) inSerializableTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	err := d.Bun.RunInTx(ctx, opts, fn)
	if isSerializationFailure(err) {
		err = d.Bun.RunInTx(ctx, opts, fn)
	}
	return err
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001"
	}
	return false
}
