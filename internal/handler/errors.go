package handler

import (
	"errors"
	"net/http"
	"strconv"

	"propertychat/internal/observability"
	"propertychat/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	sessionHeader    = "X-Session-Id"
	anonymousSession = "anonymous"
)

// respondError maps service errors to status codes. Internal errors are logged and
// answered with fallback instead of the error text.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		observability.LoggerFromContext(c.Request.Context()).Error().
			Err(err).
			Str("path", c.FullPath()).
			Msg(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
	}
}

// queryLimit reads ?limit=. A missing value yields 0, which the services replace with the
// default page size.
func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid limit"})
		return 0, false
	}
	return limit, true
}

func sessionFromHeader(c *gin.Context) string {
	if id := c.GetHeader(sessionHeader); id != "" {
		return id
	}
	return anonymousSession
}
