package hotel_api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-booking/internal/auth"
	"ms-booking/internal/hotels"
	"ms-booking/internal/logger"
	"ms-booking/internal/models"
)

type HotelService interface {
	GetHotels(ctx context.Context, userID string) ([]models.Hotel, error)
	GetHotelRooms(ctx context.Context, userID, hotelID string) (*models.Hotel, error)
}

type Handler struct {
	HotelService HotelService
	Logger       *logger.Logger
}

func NewHandler(svc HotelService, log *logger.Logger) *Handler {
	return &Handler{HotelService: svc, Logger: log}
}

func (h *Handler) GetHotels(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	h.Logger.Info("API", fmt.Sprintf("GetHotels: userId=%s", userID))

	list, err := h.HotelService.GetHotels(r.Context(), userID)
	if err != nil {
		h.writeError(w, "GetHotels", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

func (h *Handler) GetHotelRooms(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	hotelID := chi.URLParam(r, "hotelId")
	h.Logger.Info("API", fmt.Sprintf("GetHotelRooms: userId=%s hotelId=%s", userID, hotelID))

	hotel, err := h.HotelService.GetHotelRooms(r.Context(), userID, hotelID)
	if err != nil {
		h.writeError(w, "GetHotelRooms", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(hotel)
}

// Catalog denial gets its own status (402) so clients can distinguish "pay
// or upgrade your ticket" from a plain 404.
func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, hotels.ErrNotFound):
		h.Logger.Warn("API", fmt.Sprintf("%s: %v", op, err))
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, hotels.ErrCannotListHotels):
		h.Logger.Warn("API", fmt.Sprintf("%s: %v", op, err))
		http.Error(w, "Cannot list hotels", http.StatusPaymentRequired)
	default:
		h.Logger.Error("API", fmt.Sprintf("%s: %v", op, err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
