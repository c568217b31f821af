package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"courtbook/models"
	"courtbook/services/booking"
	"courtbook/services/slot"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubReservationService struct {
	createResp  *models.ReservationResponse
	createErr   error
	unavailable []slot.HourRange
	queryErr    error
}

func (s *stubReservationService) CreateReservation(_ context.Context, _ models.CreateReservationRequest) (*models.ReservationResponse, error) {
	return s.createResp, s.createErr
}

func (s *stubReservationService) CheckConflict(_ context.Context, _, _ string, _ []slot.HourRange) error {
	return nil
}

func (s *stubReservationService) UnavailableRanges(_ context.Context, _, _ string) ([]slot.HourRange, error) {
	return s.unavailable, s.queryErr
}

func (s *stubReservationService) FullyBookedDates(_ context.Context, _ string) ([]string, error) {
	return []string{"2024-02-01"}, s.queryErr
}

func (s *stubReservationService) BookedHourTotals(_ context.Context, _ string) (map[string]int, error) {
	return map[string]int{"2024-02-01": 6}, s.queryErr
}

func newTestRouter(svc booking.ReservationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewReservationHandler(svc, zap.NewNop())
	r.POST("/api/reservations", h.CreateReservation)
	r.GET("/api/courts/:courtID/unavailable", h.GetUnavailableRanges)
	r.GET("/api/courts/:courtID/fully-booked", h.GetFullyBookedDates)
	return r
}

const validBody = `{"courtId":"R1","customerName":"Dana","customerPhone":"+15550100","date":"2024-01-10","ranges":[[10,12]],"amountPaid":500}`

func TestCreateReservationEndpoint(t *testing.T) {
	svc := &stubReservationService{
		createResp: &models.ReservationResponse{
			Reservation:      models.Reservation{ID: "res-1", CourtID: "R1"},
			BookedStartHours: []int{10},
		},
	}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"bookedStartHours":[10]`)
}

func TestCreateReservationEndpointStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation error", &booking.ValidationError{Message: "bad ranges"}, http.StatusBadRequest},
		{"conflict error", &booking.ConflictError{
			Candidate: slot.HourRange{Start: 11, End: 13},
			Existing:  slot.HourRange{Start: 10, End: 12},
		}, http.StatusConflict},
		{"not found error", &booking.NotFoundError{Resource: "court", ID: "R9"}, http.StatusNotFound},
		{"dependency error", &booking.DependencyError{Op: "insert"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubReservationService{createErr: tt.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(validBody))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestCreateReservationEndpointRejectsMissingFields(t *testing.T) {
	router := newTestRouter(&stubReservationService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/reservations", strings.NewReader(`{"courtId":"R1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnavailableEndpoint(t *testing.T) {
	svc := &stubReservationService{unavailable: []slot.HourRange{{Start: 10, End: 12}}}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/courts/R1/unavailable?date=2024-01-10", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"unavailable":[[10,12]]`)
}

func TestUnavailableEndpointRequiresDate(t *testing.T) {
	router := newTestRouter(&stubReservationService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/courts/R1/unavailable", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFullyBookedEndpoint(t *testing.T) {
	router := newTestRouter(&stubReservationService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/courts/R1/fully-booked", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fullyBookedDates":["2024-02-01"]`)
}
