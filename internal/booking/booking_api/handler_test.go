package booking_api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"ms-booking/internal/auth"
	"ms-booking/internal/booking"
	"ms-booking/internal/booking/booking_api"
	"ms-booking/internal/models"
)

// MockBookingService simulates the booking service behind the handlers.
type MockBookingService struct {
	booking       *models.Booking
	shouldFailOn  string
	errorToReturn error
}

func (m *MockBookingService) GetBooking(ctx context.Context, userID string) (*models.Booking, error) {
	if m.shouldFailOn == "GetBooking" {
		return nil, m.errorToReturn
	}
	return m.booking, nil
}

func (m *MockBookingService) CreateBooking(ctx context.Context, roomID, userID string) (*models.Booking, error) {
	if m.shouldFailOn == "CreateBooking" {
		return nil, m.errorToReturn
	}
	return m.booking, nil
}

func (m *MockBookingService) UpdateBooking(ctx context.Context, roomID, userID, bookingID string) (*models.Booking, error) {
	if m.shouldFailOn == "UpdateBooking" {
		return nil, m.errorToReturn
	}
	return m.booking, nil
}

func setupTestHandler() (*booking_api.Handler, *MockBookingService) {
	mockService := &MockBookingService{
		booking: &models.Booking{
			ID:     "booking1",
			UserID: "user1",
			RoomID: "room1",
			Room:   &models.Room{ID: "room1", HotelID: "hotel1", Name: "101", Capacity: 2},
		},
	}
	return booking_api.NewHandler(mockService, nil), mockService
}

func newRouter(handler *booking_api.Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/booking", handler.GetBooking)
	r.Post("/booking", handler.CreateBooking)
	r.Put("/booking/{bookingId}", handler.UpdateBooking)
	return r
}

func doRequest(r http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req = req.WithContext(auth.WithUserID(req.Context(), "user1"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGetBookingHandler(t *testing.T) {
	handler, _ := setupTestHandler()
	r := newRouter(handler)

	rec := doRequest(r, http.MethodGet, "/booking", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.BookingResponse
	err := json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "booking1", resp.ID)
	assert.Equal(t, "room1", resp.Room.ID)
}

func TestGetBookingHandlerNotFound(t *testing.T) {
	handler, mockService := setupTestHandler()
	mockService.shouldFailOn = "GetBooking"
	mockService.errorToReturn = booking.ErrNotFound
	r := newRouter(handler)

	rec := doRequest(r, http.MethodGet, "/booking", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateBookingHandler(t *testing.T) {
	handler, _ := setupTestHandler()
	r := newRouter(handler)

	body, _ := json.Marshal(models.BookingRequest{RoomID: "room1"})
	rec := doRequest(r, http.MethodPost, "/booking", body)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.Booking
	err := json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.Equal(t, "booking1", resp.ID)
}

func TestCreateBookingHandlerInvalidBody(t *testing.T) {
	handler, _ := setupTestHandler()
	r := newRouter(handler)

	rec := doRequest(r, http.MethodPost, "/booking", []byte("{not json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingHandlerForbidden(t *testing.T) {
	handler, mockService := setupTestHandler()
	mockService.shouldFailOn = "CreateBooking"
	mockService.errorToReturn = booking.ErrRoomFull
	r := newRouter(handler)

	body, _ := json.Marshal(models.BookingRequest{RoomID: "room1"})
	rec := doRequest(r, http.MethodPost, "/booking", body)

	// A full room surfaces as a plain 403
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateBookingHandlerRoomMissing(t *testing.T) {
	handler, mockService := setupTestHandler()
	mockService.shouldFailOn = "CreateBooking"
	mockService.errorToReturn = booking.ErrNotFound
	r := newRouter(handler)

	body, _ := json.Marshal(models.BookingRequest{RoomID: "ghost-room"})
	rec := doRequest(r, http.MethodPost, "/booking", body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateBookingHandlerInternalError(t *testing.T) {
	handler, mockService := setupTestHandler()
	mockService.shouldFailOn = "CreateBooking"
	mockService.errorToReturn = assert.AnError
	r := newRouter(handler)

	body, _ := json.Marshal(models.BookingRequest{RoomID: "room1"})
	rec := doRequest(r, http.MethodPost, "/booking", body)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUpdateBookingHandler(t *testing.T) {
	handler, _ := setupTestHandler()
	r := newRouter(handler)

	body, _ := json.Marshal(models.BookingRequest{RoomID: "room2"})
	rec := doRequest(r, http.MethodPut, "/booking/booking1", body)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateBookingHandlerForbidden(t *testing.T) {
	handler, mockService := setupTestHandler()
	mockService.shouldFailOn = "UpdateBooking"
	mockService.errorToReturn = booking.ErrForbidden
	r := newRouter(handler)

	body, _ := json.Marshal(models.BookingRequest{RoomID: "room2"})
	rec := doRequest(r, http.MethodPut, "/booking/other-booking", body)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateBookingHandlerInvalidBody(t *testing.T) {
	handler, _ := setupTestHandler()
	r := newRouter(handler)

	rec := doRequest(r, http.MethodPut, "/booking/booking1", []byte(""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
