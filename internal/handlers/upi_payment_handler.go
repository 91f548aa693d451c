package handlers

import (
	"net/http"
	"strconv"

	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/Ravij-p/sandhan-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UpiPaymentHandler handles the manual UPI payment flow
type UpiPaymentHandler struct {
	upiService services.UpiPaymentService
}

// NewUpiPaymentHandler creates a new UpiPaymentHandler
func NewUpiPaymentHandler(upiService services.UpiPaymentService) *UpiPaymentHandler {
	return &UpiPaymentHandler{upiService: upiService}
}

// InitiatePublic handles POST /api/upi-payments/initiate-public. No authentication:
// the buyer may not have an account yet, one is created for them.
func (h *UpiPaymentHandler) InitiatePublic(c *gin.Context) {
	var req models.PublicInitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.upiService.InitiatePublic(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitUTR handles POST /api/upi-payments/submit-utr
func (h *UpiPaymentHandler) SubmitUTR(c *gin.Context) {
	studentID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return
	}

	var req models.SubmitUTRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID format"})
		return
	}

	payment, err := h.upiService.SubmitUTR(c.Request.Context(), studentID, courseID, req.UTRNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// ListByStatus handles GET /api/admin/upi-payments
func (h *UpiPaymentHandler) ListByStatus(c *gin.Context) {
	status := c.DefaultQuery("status", models.UpiStatusPending)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	payments, err := h.upiService.ListByStatus(c.Request.Context(), status, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Approve handles POST /api/admin/upi-payments/:id/approve
func (h *UpiPaymentHandler) Approve(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	approvedBy := ""
	if email, ok := c.Get("userEmail"); ok {
		approvedBy, _ = email.(string)
	}

	payment, err := h.upiService.Approve(c.Request.Context(), id, approvedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// Reject handles POST /api/admin/upi-payments/:id/reject
func (h *UpiPaymentHandler) Reject(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	payment, err := h.upiService.Reject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}
