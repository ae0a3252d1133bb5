package hotels

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"ms-booking/internal/logger"
	"ms-booking/internal/models"
)

type TicketLayer interface {
	GetEnrollmentByUserID(ctx context.Context, userID string) (*models.Enrollment, error)
	GetTicketByEnrollmentID(ctx context.Context, enrollmentID string) (*models.Ticket, error)
}

type CatalogLayer interface {
	GetHotels(ctx context.Context) ([]models.Hotel, error)
	GetHotelByID(ctx context.Context, hotelID string) (*models.Hotel, error)
}

// Cache is an optional byte cache in front of the catalog reads. A nil
// Cache disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// HotelService gates catalog visibility on ticket eligibility and serves the
// hotel/room listings. It never mutates anything.
type HotelService struct {
	Tickets TicketLayer
	Catalog CatalogLayer
	Cache   Cache
	Logger  *logger.Logger
}

func NewHotelService(tickets TicketLayer, catalog CatalogLayer, cache Cache, log *logger.Logger) *HotelService {
	return &HotelService{Tickets: tickets, Catalog: catalog, Cache: cache, Logger: log}
}

// AssertHotelAccess is the catalog gate: the user must be enrolled and hold
// a paid, in-person ticket that includes lodging.
func (s *HotelService) AssertHotelAccess(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrNotFound
	}

	enrollment, err := s.Tickets.GetEnrollmentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("user %s is not enrolled: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("fetch enrollment: %w", err)
	}

	ticket, err := s.Tickets.GetTicketByEnrollmentID(ctx, enrollment.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("enrollment %s has no ticket: %w", enrollment.ID, ErrCannotListHotels)
		}
		return fmt.Errorf("fetch ticket: %w", err)
	}

	if !ticket.HotelEligible() {
		return fmt.Errorf("ticket %s: %w", ticket.ID, ErrCannotListHotels)
	}

	return nil
}

// GetHotels returns the full hotel catalog for an eligible user.
func (s *HotelService) GetHotels(ctx context.Context, userID string) ([]models.Hotel, error) {
	if err := s.AssertHotelAccess(ctx, userID); err != nil {
		return nil, err
	}

	const cacheKey = "catalog:hotels"
	var hotels []models.Hotel
	if s.cacheGet(ctx, cacheKey, &hotels) {
		return hotels, nil
	}

	hotels, err := s.Catalog.GetHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch hotels: %w", err)
	}
	if len(hotels) == 0 {
		return nil, fmt.Errorf("no hotels registered: %w", ErrNotFound)
	}

	s.cacheSet(ctx, cacheKey, hotels)
	return hotels, nil
}

// GetHotelRooms returns one hotel with its rooms for an eligible user.
func (s *HotelService) GetHotelRooms(ctx context.Context, userID, hotelID string) (*models.Hotel, error) {
	if err := s.AssertHotelAccess(ctx, userID); err != nil {
		return nil, err
	}
	if hotelID == "" {
		return nil, ErrNotFound
	}

	cacheKey := "catalog:hotel:" + hotelID
	var cached models.Hotel
	if s.cacheGet(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	hotel, err := s.Catalog.GetHotelByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("hotel %s does not exist: %w", hotelID, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch hotel: %w", err)
	}
	if len(hotel.Rooms) == 0 {
		return nil, fmt.Errorf("hotel %s has no rooms: %w", hotelID, ErrNotFound)
	}

	s.cacheSet(ctx, cacheKey, hotel)
	return hotel, nil
}

func (s *HotelService) cacheGet(ctx context.Context, key string, dst interface{}) bool {
	if s.Cache == nil {
		return false
	}
	raw, ok := s.Cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		if s.Logger != nil {
			s.Logger.Warn("REDIS", fmt.Sprintf("corrupt cache entry %s: %v", key, err))
		}
		return false
	}
	return true
}

func (s *HotelService) cacheSet(ctx context.Context, key string, v interface{}) {
	if s.Cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.Cache.Set(ctx, key, raw)
}
