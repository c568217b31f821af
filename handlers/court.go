package handlers

import (
	"net/http"

	courtRepo "courtbook/database/repository/court"
	"courtbook/models"
	"courtbook/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CourtHandler exposes the court catalog reads plus an admin seed endpoint.
type CourtHandler struct {
	Repo   courtRepo.CourtRepository
	Logger *zap.Logger
}

func NewCourtHandler(repo courtRepo.CourtRepository, logger *zap.Logger) *CourtHandler {
	return &CourtHandler{Repo: repo, Logger: logger}
}

// CreateCourt handles POST /api/courts.
func (h *CourtHandler) CreateCourt(c *gin.Context) {
	var court models.Court
	if err := c.ShouldBindJSON(&court); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if court.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "name is required")
		return
	}
	if court.HourlyPrice < 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "hourlyPrice must not be negative")
		return
	}
	court.Active = true

	if err := h.Repo.Insert(c.Request.Context(), &court); err != nil {
		h.Logger.Error("failed to insert court", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "please try again later")
		return
	}
	c.JSON(http.StatusCreated, court)
}

// GetCourts handles GET /api/courts.
func (h *CourtHandler) GetCourts(c *gin.Context) {
	courts, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to fetch courts", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "please try again later")
		return
	}
	if courts == nil {
		courts = []models.Court{}
	}
	c.JSON(http.StatusOK, courts)
}

// GetCourtByID handles GET /api/courts/:courtID.
func (h *CourtHandler) GetCourtByID(c *gin.Context) {
	court, err := h.Repo.GetByID(c.Request.Context(), c.Param("courtID"))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.JSONError(c, http.StatusNotFound, "not found", "unknown court")
			return
		}
		h.Logger.Error("failed to fetch court", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "please try again later")
		return
	}
	c.JSON(http.StatusOK, court)
}
