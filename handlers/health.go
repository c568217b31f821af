package handlers

import (
	"net/http"

	"courtbook/utils"

	"github.com/gin-gonic/gin"
)

// Healthz reports the latest health snapshot of Mongo and Redis.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"deps":   utils.GetHealthStatus(),
	})
}
