package handlers

import (
	"net/http"

	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/Ravij-p/sandhan-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdHandler handles homepage ad requests
type AdHandler struct {
	adService services.AdService
}

// NewAdHandler creates a new AdHandler
func NewAdHandler(adService services.AdService) *AdHandler {
	return &AdHandler{adService: adService}
}

// ListActive handles GET /api/ads
func (h *AdHandler) ListActive(c *gin.Context) {
	ads, err := h.adService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ads)
}

// ListAll handles GET /api/admin/ads
func (h *AdHandler) ListAll(c *gin.Context) {
	ads, err := h.adService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ads)
}

// Create handles POST /api/admin/ads
func (h *AdHandler) Create(c *gin.Context) {
	var ad models.HomepageAd
	if err := c.ShouldBindJSON(&ad); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adService.Create(c.Request.Context(), &ad); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ad)
}

// Update handles PUT /api/admin/ads/:id
func (h *AdHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var ad models.HomepageAd
	if err := c.ShouldBindJSON(&ad); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ad.ID = id

	if err := h.adService.Update(c.Request.Context(), &ad); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ad)
}

// Delete handles DELETE /api/admin/ads/:id
func (h *AdHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.adService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ad deleted"})
}
