package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kwatts/networth/internal/models"
	"github.com/kwatts/networth/internal/services"
	"github.com/kwatts/networth/internal/validate"
)

// AssetHandler handles asset CRUD endpoints
type AssetHandler struct {
	assetSvc *services.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetSvc *services.AssetService) *AssetHandler {
	return &AssetHandler{assetSvc: assetSvc}
}

// List handles GET /assets
func (h *AssetHandler) List(c *gin.Context) {
	assets, err := h.assetSvc.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

// Create handles POST /assets
func (h *AssetHandler) Create(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	asset, err := h.assetSvc.Add(c.Request.Context(), raw)
	if err != nil {
		if respondValidationError(c, err) {
			return
		}
		if errors.Is(err, services.ErrDuplicateAsset) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Error:   "conflict",
				Message: "asset with this id already exists",
			})
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, asset)
}

// Get handles GET /assets/:id
func (h *AssetHandler) Get(c *gin.Context) {
	asset, err := h.assetSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			respondAssetNotFound(c)
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

// Replace handles PUT /assets/:id
func (h *AssetHandler) Replace(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	asset, err := h.assetSvc.Replace(c.Request.Context(), c.Param("id"), raw)
	if err != nil {
		if respondValidationError(c, err) {
			return
		}
		if errors.Is(err, services.ErrIDMismatch) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: "asset id in body does not match resource id",
			})
			return
		}
		if errors.Is(err, services.ErrAssetNotFound) {
			respondAssetNotFound(c)
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, asset)
}

// ReplaceAll handles PUT /assets
func (h *AssetHandler) ReplaceAll(c *gin.Context) {
	var req models.ReplaceAssetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	assets, err := h.assetSvc.ReplaceAll(c.Request.Context(), req.Assets)
	if err != nil {
		if respondValidationError(c, err) {
			return
		}
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, assets)
}

// Delete handles DELETE /assets/:id
func (h *AssetHandler) Delete(c *gin.Context) {
	err := h.assetSvc.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			respondAssetNotFound(c)
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "asset deleted"})
}

// DeleteAll handles DELETE /assets
func (h *AssetHandler) DeleteAll(c *gin.Context) {
	if err := h.assetSvc.Reset(c.Request.Context()); err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "assets cleared"})
}

// respondValidationError maps a *ValidationError to a 400 carrying the full
// field list. Returns false when err is some other kind of failure.
func respondValidationError(c *gin.Context, err error) bool {
	var verr *validate.ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation_failed",
		Message: "input failed validation",
		Details: verr.Fields,
	})
	return true
}

func respondAssetNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "not_found",
		Message: "asset not found",
	})
}

func respondInternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}
