package handlers

import (
	"errors"
	"net/http"

	"courtbook/models"
	"courtbook/services/booking"
	"courtbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationHandler exposes the availability engine over HTTP.
type ReservationHandler struct {
	Svc    booking.ReservationService
	Logger *zap.Logger
}

func NewReservationHandler(svc booking.ReservationService, logger *zap.Logger) *ReservationHandler {
	return &ReservationHandler{Svc: svc, Logger: logger}
}

// CreateReservation handles POST /api/reservations.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Svc.CreateReservation(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetUnavailableRanges handles GET /api/courts/:courtID/unavailable?date=YYYY-MM-DD.
func (h *ReservationHandler) GetUnavailableRanges(c *gin.Context) {
	courtID := c.Param("courtID")
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date query parameter is required")
		return
	}

	ranges, err := h.Svc.UnavailableRanges(c.Request.Context(), courtID, date)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	// The wire contract is a list of [start, end) pairs.
	pairs := make([][]int, len(ranges))
	for i, r := range ranges {
		pairs[i] = []int{r.Start, r.End}
	}
	c.JSON(http.StatusOK, gin.H{
		"courtId":     courtID,
		"date":        date,
		"unavailable": pairs,
	})
}

// GetFullyBookedDates handles GET /api/courts/:courtID/fully-booked.
func (h *ReservationHandler) GetFullyBookedDates(c *gin.Context) {
	courtID := c.Param("courtID")

	dates, err := h.Svc.FullyBookedDates(c.Request.Context(), courtID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	if dates == nil {
		dates = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"courtId":          courtID,
		"fullyBookedDates": dates,
	})
}

// GetBookedHourTotals handles GET /api/courts/:courtID/booked-hours.
func (h *ReservationHandler) GetBookedHourTotals(c *gin.Context) {
	courtID := c.Param("courtID")

	totals, err := h.Svc.BookedHourTotals(c.Request.Context(), courtID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"courtId":     courtID,
		"bookedHours": totals,
	})
}

// respondServiceError maps the engine's error taxonomy onto HTTP statuses.
func (h *ReservationHandler) respondServiceError(c *gin.Context, err error) {
	var vErr *booking.ValidationError
	var cErr *booking.ConflictError
	var nfErr *booking.NotFoundError

	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", vErr.Message)
	case errors.As(err, &cErr):
		c.JSON(http.StatusConflict, gin.H{
			"message":   "requested hours are no longer available",
			"requested": []int{cErr.Candidate.Start, cErr.Candidate.End},
			"reserved":  []int{cErr.Existing.Start, cErr.Existing.End},
		})
	case errors.As(err, &nfErr):
		utils.JSONError(c, http.StatusNotFound, "not found", nfErr.Error())
	default:
		h.Logger.Error("reservation request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "please try again later")
	}
}
