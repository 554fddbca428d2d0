//go:build embed
// +build embed

package main

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

//go:embed web/dist
var webDist embed.FS

// setupStaticFiles serves the embedded chat UI. Unknown paths fall back to index.html for
// client-side routing.
func setupStaticFiles(router *gin.Engine) {
	log.Info().Msg("using embedded chat UI assets")

	distFS, err := fs.Sub(webDist, "web/dist")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get dist subdirectory")
	}
	fileServer := http.FileServer(http.FS(distFS))

	router.NoRoute(func(c *gin.Context) {
		urlPath := c.Request.URL.Path
		if strings.HasPrefix(urlPath, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"message": "API endpoint not found"})
			return
		}

		name := strings.TrimPrefix(path.Clean(urlPath), "/")
		if name == "" {
			name = "index.html"
		}
		if stat, err := fs.Stat(distFS, name); err != nil || stat.IsDir() {
			c.FileFromFS("/", http.FS(distFS))
			return
		}

		fileServer.ServeHTTP(c.Writer, c.Request)
	})
}
