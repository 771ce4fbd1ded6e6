package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kwatts/networth/internal/models"
	"github.com/kwatts/networth/internal/services"
)

// GoalHandler handles goal endpoints
type GoalHandler struct {
	goalSvc *services.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalSvc *services.GoalService) *GoalHandler {
	return &GoalHandler{goalSvc: goalSvc}
}

// Get handles GET /goals
func (h *GoalHandler) Get(c *gin.Context) {
	goals, err := h.goalSvc.Get(c.Request.Context())
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

// Put handles PUT /goals
func (h *GoalHandler) Put(c *gin.Context) {
	var goals models.Goals
	if err := c.ShouldBindJSON(&goals); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	saved, err := h.goalSvc.Set(c.Request.Context(), goals)
	if err != nil {
		if respondValidationError(c, err) {
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}

// Delete handles DELETE /goals
func (h *GoalHandler) Delete(c *gin.Context) {
	if err := h.goalSvc.Clear(c.Request.Context()); err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "goals cleared"})
}
