package routes

import (
	"courtbook/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterReservationRoutes registers reservation and availability endpoints.
func RegisterReservationRoutes(r *gin.Engine, rh *handlers.ReservationHandler) {
	api := r.Group("/api/reservations")
	{
		api.POST("", rh.CreateReservation)
	}
}

// RegisterCourtRoutes registers the court catalog and its derived queries.
func RegisterCourtRoutes(r *gin.Engine, ch *handlers.CourtHandler, rh *handlers.ReservationHandler) {
	api := r.Group("/api/courts")
	{
		api.GET("", ch.GetCourts)
		api.POST("", ch.CreateCourt)
		api.GET("/:courtID", ch.GetCourtByID)
		api.GET("/:courtID/unavailable", rh.GetUnavailableRanges)
		api.GET("/:courtID/fully-booked", rh.GetFullyBookedDates)
		api.GET("/:courtID/booked-hours", rh.GetBookedHourTotals)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/healthz", handlers.Healthz)
}
