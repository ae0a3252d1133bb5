package booking_api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ms-booking/internal/auth"
	"ms-booking/internal/booking"
	"ms-booking/internal/logger"
	"ms-booking/internal/models"
)

type BookingService interface {
	GetBooking(ctx context.Context, userID string) (*models.Booking, error)
	CreateBooking(ctx context.Context, roomID, userID string) (*models.Booking, error)
	UpdateBooking(ctx context.Context, roomID, userID, bookingID string) (*models.Booking, error)
}

type Handler struct {
	BookingService BookingService
	Logger         *logger.Logger
}

func NewHandler(svc BookingService, log *logger.Logger) *Handler {
	return &Handler{BookingService: svc, Logger: log}
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	h.Logger.Info("API", fmt.Sprintf("GetBooking: userId=%s", userID))

	b, err := h.BookingService.GetBooking(r.Context(), userID)
	if err != nil {
		h.writeError(w, "GetBooking", err)
		return
	}

	resp := models.BookingResponse{ID: b.ID, Room: b.Room}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	h.Logger.Info("API", fmt.Sprintf("CreateBooking: userId=%s", userID))

	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("CreateBooking: failed to decode request body: %v", err))
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.BookingService.CreateBooking(r.Context(), req.RoomID, userID)
	if err != nil {
		h.writeError(w, "CreateBooking", err)
		return
	}
	h.Logger.LogBooking("CREATE", b.ID, fmt.Sprintf("user %s assigned to room %s", userID, b.RoomID))

	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	bookingID := chi.URLParam(r, "bookingId")
	h.Logger.Info("API", fmt.Sprintf("UpdateBooking: userId=%s bookingId=%s", userID, bookingID))

	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateBooking: failed to decode request body: %v", err))
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.BookingService.UpdateBooking(r.Context(), req.RoomID, userID, bookingID)
	if err != nil {
		h.writeError(w, "UpdateBooking", err)
		return
	}
	h.Logger.LogBooking("UPDATE", b.ID, fmt.Sprintf("user %s moved to room %s", userID, b.RoomID))

	writeJSON(w, http.StatusOK, b)
}

// writeError maps the service's error kinds onto wire status codes:
// missing entities → 404, business-rule denials → 403, the rest → 500.
func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		h.Logger.Warn("API", fmt.Sprintf("%s: %v", op, err))
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, booking.ErrForbidden):
		h.Logger.Warn("API", fmt.Sprintf("%s: %v", op, err))
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		h.Logger.Error("API", fmt.Sprintf("%s: %v", op, err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
