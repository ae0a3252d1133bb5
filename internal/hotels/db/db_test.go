package db_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"ms-booking/internal/hotels/db"
	"ms-booking/internal/models"
)

func setupTestDB(t *testing.T) (*db.DB, *bun.DB) {
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	sqldb.SetMaxOpenConns(1)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	for _, model := range []interface{}{
		(*models.Hotel)(nil),
		(*models.Room)(nil),
	} {
		if _, err := bunDB.NewCreateTable().Model(model).Exec(context.Background()); err != nil {
			t.Fatalf("Failed to create table: %v", err)
		}
	}

	return &db.DB{Bun: bunDB}, bunDB
}

func seedCatalog(t *testing.T, bunDB *bun.DB) {
	t.Helper()
	ctx := context.Background()

	hotels := []models.Hotel{
		{ID: "hotel1", Name: "Palms Hotel"},
		{ID: "hotel2", Name: "Driven Resort"},
	}
	_, err := bunDB.NewInsert().Model(&hotels).Exec(ctx)
	require.NoError(t, err)

	rooms := []models.Room{
		{ID: "room1", HotelID: "hotel1", Name: "101", Capacity: 2},
		{ID: "room2", HotelID: "hotel1", Name: "102", Capacity: 3},
	}
	_, err = bunDB.NewInsert().Model(&rooms).Exec(ctx)
	require.NoError(t, err)
}

func TestGetHotels(t *testing.T) {
	hotelDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	seedCatalog(t, bunDB)

	hotels, err := hotelDB.GetHotels(context.Background())

	assert.NoError(t, err)
	assert.Len(t, hotels, 2)
	// Sorted by name
	assert.Equal(t, "Driven Resort", hotels[0].Name)
	assert.Equal(t, "Palms Hotel", hotels[1].Name)
}

func TestGetHotelsEmpty(t *testing.T) {
	hotelDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	hotels, err := hotelDB.GetHotels(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, hotels)
}

func TestGetHotelByID(t *testing.T) {
	hotelDB, bunDB := setupTestDB(t)
	defer bunDB.Close()

	seedCatalog(t, bunDB)

	hotel, err := hotelDB.GetHotelByID(context.Background(), "hotel1")

	assert.NoError(t, err)
	assert.Equal(t, "Palms Hotel", hotel.Name)
	assert.Len(t, hotel.Rooms, 2)

	// A hotel without rooms still resolves; the service decides what an
	// empty room list means.
	hotel, err = hotelDB.GetHotelByID(context.Background(), "hotel2")
	assert.NoError(t, err)
	assert.Empty(t, hotel.Rooms)

	_, err = hotelDB.GetHotelByID(context.Background(), "ghost-hotel")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
