package handlers

import (
	"crypto/rand"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"

	"github.com/sumitkumargeu/qrstudio/internal/compose"
	"github.com/sumitkumargeu/qrstudio/internal/imageload"
	"github.com/sumitkumargeu/qrstudio/internal/raster"
)

// Module sizes for the two output tiers. Download targets ~2000px after
// scaling; preview stays small and is rescaled to previewSize at the end.
const (
	previewModuleSize  = 16
	downloadModuleSize = 120
	downloadTargetPx   = 2000
)

// normalizeHTTPURL validates and normalizes a URL string for QR generation.
// It ensures an http/https scheme, a non-empty hostname, and returns a cleaned absolute URL.
func normalizeHTTPURL(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("URL parameter is required")
	}
	// If missing scheme, default to https
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("only http and https URLs are supported")
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL must include a valid host")
	}
	// Optional: cap length to avoid abuse
	if len(v) > 4096 {
		return "", fmt.Errorf("URL is too long")
	}
	return u.String(), nil
}

// QRCodeHandler generates styled QR codes for URLs. The pipeline runs fully
// in memory: encode, sample modules, restyle, overlay logo, add border and
// frame, then stream PNG or JPEG.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	normalizedURL, err := normalizeHTTPURL(c.Query("url"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	style, err := raster.ParseStyle(c.DefaultQuery("style", "square"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logoShape, err := compose.ParseShape(c.Query("logoShape"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logoLayout, err := compose.ParseLayout(c.Query("logoLayout"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "png"))
	if format == "jpeg" {
		format = "jpg"
	}
	if format != "png" && format != "jpg" {
		format = "png"
	}

	fgColor := parseColorParam(c.Query("fg"), color.RGBA{0, 0, 0, 255})
	bgColor := parseColorParam(c.Query("bg"), color.RGBA{255, 255, 255, 255})
	size := c.DefaultQuery("size", "preview")

	fmt.Printf("[QR] request start: url=%q format=%s size=%s style=%s layout=%s\n",
		normalizedURL, format, size, style, logoLayout)

	qrc, err := qrcode.NewWith(normalizedURL, qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create QR code"})
		return
	}

	// Base render. The identity style keeps the caller's colors; every
	// other style renders black on white for sampling and gets recolored
	// by the rasterizer.
	baseFg, baseBg := fgColor, bgColor
	if style != raster.StyleSquare {
		baseFg = color.RGBA{0, 0, 0, 255}
		baseBg = color.RGBA{255, 255, 255, 255}
	}
	moduleSize := uint8(previewModuleSize)
	if size == "download" {
		moduleSize = downloadModuleSize
	}
	img, err := h.renderBase(qrc, moduleSize, baseFg, baseBg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to generate QR code image: %v", err)})
		return
	}

	// Cell size comes from the encoder's actual module count, not a fixed
	// reference grid.
	dimension := qrc.Dimension()
	if dimension <= 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid QR matrix dimension"})
		return
	}
	cellSize := img.Bounds().Dx() / dimension

	styled, err := raster.Rasterize(img, style, cellSize, fgColor, bgColor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to style QR code: %v", err)})
		return
	}

	// Logo overlay is optional decoration; a failed load degrades to no
	// logo, never to a failed render.
	if logo := h.loadLogo(c); logo != nil {
		pct := clampPercent(c.DefaultQuery("logoSize", "20"), 10, 25)
		styled = compose.OverlayLogo(styled, logo, logoShape, logoLayout, pct, bgColor)
	}

	if border, err := strconv.Atoi(c.DefaultQuery("border", "0")); err == nil && border > 0 {
		borderColor := parseColorParam(c.Query("borderColor"), bgColor)
		if out, err := compose.AddBorder(styled, border, borderColor); err == nil {
			styled = out
		} else {
			fmt.Printf("Warning: could not add border: %v\n", err)
		}
	}

	if frame := c.DefaultQuery("frame", "none"); frame != "none" {
		frameWidth, _ := strconv.Atoi(c.DefaultQuery("frameWidth", "0"))
		if frameWidth <= 0 {
			// Base frame width: 4% of the current edge.
			frameWidth = styled.Bounds().Dx() * 4 / 100
		}
		frameColor := parseColorParam(c.Query("frameColor"), fgColor)
		if out, err := compose.AddFrame(styled, frame, frameWidth, bgColor, frameColor); err == nil {
			styled = out
		} else {
			fmt.Printf("Warning: could not add frame: %v\n", err)
		}
	}

	// Final scaling to the requested output size.
	target := 0
	if size == "download" {
		target = downloadTargetPx
	} else if ps := c.Query("previewSize"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 {
			target = v
		}
	}
	if target > 0 && styled.Bounds().Dx() != target {
		if out, err := raster.ScaleNearest(styled, target); err == nil {
			styled = out
		}
	}

	c.Header("Cache-Control", "public, max-age=3600")
	if format == "jpg" {
		// JPEG has no alpha; composite onto an opaque background first.
		bg := color.RGBA{bgColor.R, bgColor.G, bgColor.B, 255}
		if bgColor.A == 0 {
			bg = color.RGBA{255, 255, 255, 255}
		}
		out := image.NewRGBA(styled.Bounds())
		draw.Draw(out, out.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
		draw.Draw(out, out.Bounds(), styled, styled.Bounds().Min, draw.Over)

		c.Header("Content-Type", "image/jpeg")
		if err := jpeg.Encode(c.Writer, out, &jpeg.Options{Quality: 92}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to encode JPEG: %v", err)})
			return
		}
		fmt.Printf("[QR] sent JPG size=%s style=%s\n", size, style)
		return
	}

	c.Header("Content-Type", "image/png")
	if err := png.Encode(c.Writer, styled); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send QR code"})
		return
	}
	fmt.Printf("[QR] sent PNG size=%s style=%s\n", size, style)
}

// renderBase writes the encoded symbol to a temporary PNG through the writer
// and reads it back as an RGBA buffer. The writer only targets files, hence
// the temp file dance.
func (h *Handler) renderBase(qrc *qrcode.QRCode, moduleSize uint8, fg, bg color.RGBA) (*image.RGBA, error) {
	tmpFile := filepath.Join(os.TempDir(), generateUniqueFilename("qr", ".png"))
	defer os.Remove(tmpFile)

	writer, err := standard.New(tmpFile,
		standard.WithQRWidth(moduleSize),
		standard.WithBorderWidth(0),
		standard.WithFgColor(fg),
		standard.WithBgColor(bg),
		standard.WithBuiltinImageEncoder(standard.PNG_FORMAT),
	)
	if err != nil {
		return nil, fmt.Errorf("create QR writer: %v", err)
	}
	if err := qrc.Save(writer); err != nil {
		return nil, fmt.Errorf("render QR: %v", err)
	}
	writer.Close()

	file, err := os.Open(tmpFile)
	if err != nil {
		return nil, fmt.Errorf("open rendered QR: %v", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode rendered QR: %v", err)
	}
	return raster.ToRGBA(img), nil
}

// loadLogo resolves the request's logo source, if any. Uploaded files are
// referenced by name under the upload dir; remote and data-URI logos go
// through the shared image loader with its timeout.
func (h *Handler) loadLogo(c *gin.Context) image.Image {
	if name := c.Query("logoFile"); name != "" {
		path := filepath.Join(h.uploadDir, filepath.Base(name))
		file, err := os.Open(path)
		if err != nil {
			fmt.Printf("Warning: logo file %s not found: %v\n", name, err)
			return nil
		}
		defer file.Close()
		img, _, err := image.Decode(file)
		if err != nil {
			fmt.Printf("Warning: could not decode logo %s: %v\n", name, err)
			return nil
		}
		return img
	}
	if uri := c.Query("logoData"); uri != "" {
		return imageload.Load(c.Request.Context(), uri, imageload.DefaultTimeout)
	}
	if remote := c.Query("logoURL"); remote != "" {
		return imageload.Load(c.Request.Context(), remote, imageload.DefaultTimeout)
	}
	return nil
}

// clampPercent parses a percent parameter and clamps it to [lo, hi].
func clampPercent(s string, lo, hi float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Helper function to parse hex color parameters
func parseColorParam(param string, defaultColor color.RGBA) color.RGBA {
	if param == "" {
		return defaultColor
	}

	// Handle transparent background
	if strings.ToLower(param) == "transparent" {
		return color.RGBA{0, 0, 0, 0} // Fully transparent
	}

	// Remove # if present
	param = strings.TrimPrefix(param, "#")

	// Ensure it's 6 characters
	if len(param) != 6 {
		return defaultColor
	}

	// Parse hex values
	r, err1 := strconv.ParseUint(param[0:2], 16, 8)
	g, err2 := strconv.ParseUint(param[2:4], 16, 8)
	b, err3 := strconv.ParseUint(param[4:6], 16, 8)

	if err1 != nil || err2 != nil || err3 != nil {
		return defaultColor
	}

	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}

// Helper function to generate unique temporary filenames
func generateUniqueFilename(prefix, extension string) string {
	timestamp := time.Now().UnixNano()
	randomBytes := make([]byte, 4)
	rand.Read(randomBytes)
	return fmt.Sprintf("%s_%d_%x%s", prefix, timestamp, randomBytes, extension)
}
