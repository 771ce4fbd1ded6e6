package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kwatts/networth/internal/models"
	"github.com/kwatts/networth/internal/services"
	"github.com/kwatts/networth/internal/validate"
)

// OverviewHandler handles the portfolio overview endpoints
type OverviewHandler struct {
	overviewSvc *services.OverviewService
	assetSvc    *services.AssetService
}

// NewOverviewHandler creates a new OverviewHandler
func NewOverviewHandler(overviewSvc *services.OverviewService, assetSvc *services.AssetService) *OverviewHandler {
	return &OverviewHandler{
		overviewSvc: overviewSvc,
		assetSvc:    assetSvc,
	}
}

// Compute handles POST /portfolio/overview. The request carries raw asset
// records; any invalid record rejects the whole request with the full list
// of violations. Provider failures never fail the request; the response
// degrades per asset instead.
func (h *OverviewHandler) Compute(c *gin.Context) {
	var req models.OverviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	assets, err := validate.ValidateAssets(req.Assets)
	if err != nil {
		if respondValidationError(c, err) {
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.overviewSvc.Overview(c.Request.Context(), assets))
}

// ComputeStored handles GET /portfolio/overview, using the persisted asset
// list instead of a request body.
func (h *OverviewHandler) ComputeStored(c *gin.Context) {
	assets, err := h.assetSvc.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.overviewSvc.Overview(c.Request.Context(), assets))
}
