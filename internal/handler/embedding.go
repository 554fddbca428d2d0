package handler

import (
	"fmt"
	"net/http"

	"propertychat/internal/model"
	"propertychat/internal/service"

	"github.com/gin-gonic/gin"
)

// EmbeddingHandler handles embedding-related HTTP requests
type EmbeddingHandler struct {
	properties *service.PropertyService
	dimensions int
}

// NewEmbeddingHandler creates a new embedding handler. Vectors must have exactly
// dimensions entries.
func NewEmbeddingHandler(properties *service.PropertyService, dimensions int) *EmbeddingHandler {
	return &EmbeddingHandler{
		properties: properties,
		dimensions: dimensions,
	}
}

// BatchUpdate handles POST /api/properties/embeddings
func (h *EmbeddingHandler) BatchUpdate(c *gin.Context) {
	var req model.EmbeddingBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
		return
	}

	if len(req.Embeddings) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No embeddings provided"})
		return
	}

	for i, item := range req.Embeddings {
		if len(item.Embedding) != h.dimensions {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": fmt.Sprintf("Invalid embedding dimension at index %d, expected %d", i, h.dimensions),
			})
			return
		}
	}

	success, errors := h.properties.UpdateEmbeddings(c.Request.Context(), req.Embeddings)

	response := model.EmbeddingBatchResponse{
		Success: success,
		Failed:  len(req.Embeddings) - success,
		Errors:  errors,
	}

	if len(errors) > 0 {
		c.JSON(http.StatusPartialContent, response)
	} else {
		c.JSON(http.StatusOK, response)
	}
}
