package handler

import (
	"net/http"
	"strconv"

	"propertychat/internal/service"

	"github.com/gin-gonic/gin"
)

// PropertyHandler handles property-related HTTP requests
type PropertyHandler struct {
	properties *service.PropertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(properties *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		properties: properties,
	}
}

// List handles GET /api/properties
func (h *PropertyHandler) List(c *gin.Context) {
	properties, err := h.properties.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to fetch properties")
		return
	}

	c.JSON(http.StatusOK, properties)
}

// Get handles GET /api/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid property ID"})
		return
	}

	property, err := h.properties.Get(c.Request.Context(), id, sessionFromHeader(c))
	if err != nil {
		respondError(c, err, "Failed to fetch property")
		return
	}

	c.JSON(http.StatusOK, property)
}

// Search handles GET /api/properties/search/:query
func (h *PropertyHandler) Search(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	properties, err := h.properties.Search(c.Request.Context(), c.Param("query"), c.Query("location"), limit)
	if err != nil {
		respondError(c, err, "Failed to search properties")
		return
	}

	c.JSON(http.StatusOK, properties)
}

// ByLocation handles GET /api/properties/location/:city
func (h *PropertyHandler) ByLocation(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	properties, err := h.properties.ByLocation(c.Request.Context(), c.Param("city"), limit)
	if err != nil {
		respondError(c, err, "Failed to fetch properties by location")
		return
	}

	c.JSON(http.StatusOK, properties)
}
