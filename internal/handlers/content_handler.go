package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/Ravij-p/sandhan-backend/internal/models"
	"github.com/Ravij-p/sandhan-backend/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentHandler handles enrollment-gated video and document delivery
type ContentHandler struct {
	contentService services.ContentService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(contentService services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// ListCourseVideos handles GET /api/courses/:id/videos
func (h *ContentHandler) ListCourseVideos(c *gin.Context) {
	courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	videos, err := h.contentService.ListCourseVideos(c.Request.Context(), currentViewer(c), courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

// VideoPlaybackURL handles GET /api/courses/:id/videos/:videoId
func (h *ContentHandler) VideoPlaybackURL(c *gin.Context) {
	courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	videoID, err := primitive.ObjectIDFromHex(c.Param("videoId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	video, url, err := h.contentService.VideoPlaybackURL(c.Request.Context(), currentViewer(c), courseID, videoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"video": video, "url": url})
}

// DownloadDocument handles GET /api/documents/stream/:id. The document is
// streamed through the server so storage URLs are never exposed.
func (h *ContentHandler) DownloadDocument(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	stream, err := h.contentService.OpenDocument(c.Request.Context(), currentViewer(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	defer stream.Body.Close()

	contentType := stream.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+stream.FileName+`"`)
	c.Header("Content-Type", contentType)
	if stream.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(stream.Size, 10))
	}
	c.Status(http.StatusOK)
	io.Copy(c.Writer, stream.Body)
}

// registerVideoRequest is the admin payload for publishing a video.
// StorageKey is accepted here but never serialized back out.
type registerVideoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Provider    string `json:"provider" binding:"required"`
	StorageKey  string `json:"storageKey" binding:"required"`
	Duration    int    `json:"duration"`
	Order       int    `json:"order"`
}

// registerDocumentRequest is the admin payload for publishing a document
type registerDocumentRequest struct {
	Title       string `json:"title" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	Provider    string `json:"provider" binding:"required"`
	StorageKey  string `json:"storageKey" binding:"required"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// RegisterVideo handles POST /api/admin/courses/:id/videos
func (h *ContentHandler) RegisterVideo(c *gin.Context) {
	courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	var req registerVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video := models.Video{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		Provider:    req.Provider,
		StorageKey:  req.StorageKey,
		Duration:    req.Duration,
		Order:       req.Order,
	}
	if err := h.contentService.RegisterVideo(c.Request.Context(), &video); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, video)
}

// RegisterDocument handles POST /api/admin/courses/:id/documents
func (h *ContentHandler) RegisterDocument(c *gin.Context) {
	courseID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	var req registerDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc := models.Document{
		CourseID:    courseID,
		Title:       req.Title,
		FileName:    req.FileName,
		Provider:    req.Provider,
		StorageKey:  req.StorageKey,
		ContentType: req.ContentType,
		Size:        req.Size,
	}
	if err := h.contentService.RegisterDocument(c.Request.Context(), &doc); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}
