//go:build !embed
// +build !embed

package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const devWebDir = "./web/dist"

// setupStaticFiles serves the chat UI from disk when it has been built
func setupStaticFiles(router *gin.Engine) {
	if _, err := os.Stat(devWebDir); err != nil {
		log.Info().Msg("no built chat UI found, serving the API only")
		router.NoRoute(func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		})
		return
	}

	log.Info().Str("dir", devWebDir).Msg("serving chat UI from local filesystem")
	fileServer := http.FileServer(http.Dir(devWebDir))

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"message": "API endpoint not found"})
			return
		}
		fileServer.ServeHTTP(c.Writer, c.Request)
	})
}
