package handlers

import (
	"net/http"

	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/Ravij-p/sandhan-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogHandler handles course and test-series catalog requests
type CatalogHandler struct {
	catalogService services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListCourses handles GET /api/courses. The public listing only includes
// active courses; admins see everything.
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	viewer := currentViewer(c)
	courses, err := h.catalogService.ListCourses(c.Request.Context(), !viewer.IsAdmin())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// GetCourse handles GET /api/courses/:id
func (h *CatalogHandler) GetCourse(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	course, err := h.catalogService.GetCourse(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// CreateCourse handles POST /api/admin/courses
func (h *CatalogHandler) CreateCourse(c *gin.Context) {
	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogService.CreateCourse(c.Request.Context(), &course); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// UpdateCourse handles PUT /api/admin/courses/:id
func (h *CatalogHandler) UpdateCourse(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	course.ID = id

	if err := h.catalogService.UpdateCourse(c.Request.Context(), &course); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// DeleteCourse handles DELETE /api/admin/courses/:id
func (h *CatalogHandler) DeleteCourse(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.catalogService.DeleteCourse(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course deleted"})
}

// ListTestSeries handles GET /api/test-series
func (h *CatalogHandler) ListTestSeries(c *gin.Context) {
	viewer := currentViewer(c)
	series, err := h.catalogService.ListTestSeries(c.Request.Context(), !viewer.IsAdmin())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// GetTestSeries handles GET /api/test-series/:id
func (h *CatalogHandler) GetTestSeries(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	series, err := h.catalogService.GetTestSeries(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// CreateTestSeries handles POST /api/admin/test-series
func (h *CatalogHandler) CreateTestSeries(c *gin.Context) {
	var series models.TestSeries
	if err := c.ShouldBindJSON(&series); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogService.CreateTestSeries(c.Request.Context(), &series); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, series)
}

// UpdateTestSeries handles PUT /api/admin/test-series/:id
func (h *CatalogHandler) UpdateTestSeries(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var series models.TestSeries
	if err := c.ShouldBindJSON(&series); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	series.ID = id

	if err := h.catalogService.UpdateTestSeries(c.Request.Context(), &series); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// DeleteTestSeries handles DELETE /api/admin/test-series/:id
func (h *CatalogHandler) DeleteTestSeries(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.catalogService.DeleteTestSeries(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test series deleted"})
}
