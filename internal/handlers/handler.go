package handlers

import (
	"errors"
	"net/http"

	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/Ravij-p/sandhan-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID reads the authenticated user's id from the claims set by the
// auth middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	raw, ok := c.Get("userID")
	if !ok {
		return primitive.NilObjectID, false
	}
	hex, ok := raw.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// currentViewer builds the access-check identity from the request claims.
// Admins carry a zero StudentID.
func currentViewer(c *gin.Context) services.Viewer {
	viewer := services.Viewer{}
	if role, ok := c.Get("userRole"); ok {
		if s, ok := role.(string); ok {
			viewer.Role = s
		}
	}
	if viewer.Role != models.RoleAdmin {
		if id, ok := currentUserID(c); ok {
			viewer.StudentID = id
		}
	}
	return viewer
}

// respondError maps service sentinel errors onto HTTP statuses. Unknown errors
// become 500 with a generic body so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountDisabled):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotEnrolled):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrDuplicateUTR),
		errors.Is(err, services.ErrAlreadyEnrolled),
		errors.Is(err, services.ErrPendingExists),
		errors.Is(err, services.ErrNotPending),
		errors.Is(err, services.ErrCourseInactive),
		errors.Is(err, services.ErrSignatureMismatch),
		errors.Is(err, services.ErrInvalidOTP):
		// Validation failures and state conflicts are both client errors.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
