package controllers

import (
	"context"
	"net/http"

	"spotfix-admin/models"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// Summary returns the dashboard counters as JSON
func (h *Handlers) Summary(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	issues, err := h.issues.List(ctx)
	if err != nil {
		log.WithError(err).Error("Error fetching issues for summary")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	c.JSON(http.StatusOK, models.CountByStatus(issues))
}

// Ping is the liveness probe
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
