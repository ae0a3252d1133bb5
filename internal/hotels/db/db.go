package db

import (
	"context"
	"ms-booking/internal/models"

	"github.com/uptrace/bun"
)

type DB struct {
	Bun *bun.DB
}

// GetHotels → fetch every hotel, without rooms
func (d *DB) GetHotels(ctx context.Context) ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := d.Bun.NewSelect().
		Model(&hotels).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return hotels, nil
}

// GetHotelByID → fetch one hotel with its rooms loaded
func (d *DB) GetHotelByID(ctx context.Context, hotelID string) (*models.Hotel, error) {
	var hotel models.Hotel
	err := d.Bun.NewSelect().
		Model(&hotel).
		Relation("Rooms").
		Where("hotel.id = ?", hotelID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}
