package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NPrawn/food-classifier/internal/model"
	"github.com/NPrawn/food-classifier/internal/pipeline"
	"github.com/NPrawn/food-classifier/internal/preprocess"
)

// maxUploadBytes caps the accepted image size at 10 MiB.
const maxUploadBytes = 10 << 20

// Enricher is the pipeline surface the handlers need.
type Enricher interface {
	Enrich(imageBytes []byte) (*pipeline.Result, error)
}

// Handler serves the prediction API.
type Handler struct {
	pipe Enricher
}

// New creates a Handler backed by the given pipeline.
func New(pipe Enricher) *Handler {
	return &Handler{pipe: pipe}
}

// RegisterRoutes registers all API routes on the engine.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/health", h.Health)
	r.POST("/predict", h.Predict)
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Predict accepts a multipart image upload in form field "file", runs the
// enrichment pipeline, and returns the combined result. An unreadable image
// is the client's fault (400); a model/catalog mismatch is ours (500). No
// internal detail leaks into either response.
func (h *Handler) Predict(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "no image file provided, use 'file' as the form field name",
		})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": "image exceeds the 10MB upload limit",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}

	result, err := h.pipe.Enrich(imageBytes)
	if err != nil {
		var decodeErr *preprocess.DecodeError
		if errors.As(err, &decodeErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "invalid image, supported formats are JPEG and PNG",
			})
			return
		}

		var mismatchErr *model.LabelMismatchError
		if errors.As(err, &mismatchErr) {
			slog.Error("model/catalog mismatch", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "server model configuration error",
			})
			return
		}

		slog.Error("prediction failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
