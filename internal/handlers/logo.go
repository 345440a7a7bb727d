package handlers

import (
	"fmt"
	"image"
	_ "image/gif"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sumitkumargeu/qrstudio/internal/logoset"
)

// FaviconHandler resolves the best available icon for a site URL and returns
// it as a logo item. Exhausting every candidate is not a server error: the
// client is told to upload a logo manually instead.
func (h *Handler) FaviconHandler(c *gin.Context) {
	siteURL := strings.TrimSpace(c.Query("url"))
	if siteURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url parameter is required"})
		return
	}

	item := h.favicons.Resolve(c.Request.Context(), siteURL)
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no icon found for this site, try uploading a logo manually"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// LogoPresetsHandler lists the built-in logo suggestions.
func (h *Handler) LogoPresetsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, logoset.Presets)
}

// LogoUploadHandler stores an uploaded logo under the upload dir and returns
// a custom logo item referencing it by file name.
func (h *Handler) LogoUploadHandler(c *gin.Context) {
	file, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".svg":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported logo format %q", ext)})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not prepare upload dir"})
		return
	}
	name := generateUniqueFilename("logo", ext)
	dst := filepath.Join(h.uploadDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("could not save logo: %v", err)})
		return
	}

	// Raster uploads must at least decode; SVG is validated lazily when the
	// logo is first rasterized.
	if ext != ".svg" {
		f, err := os.Open(dst)
		if err == nil {
			_, _, err = image.Decode(f)
			f.Close()
		}
		if err != nil {
			os.Remove(dst)
			c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded file is not a valid image"})
			return
		}
	}

	c.JSON(http.StatusOK, logoset.Item{
		ID:   name,
		Name: file.Filename,
		Kind: logoset.KindCustom,
	})
}
