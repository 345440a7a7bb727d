// Package favicon resolves the best available icon for a web address by
// probing remote sources in priority order under per-candidate timeout.
package favicon

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"net/url"
	"strings"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/sumitkumargeu/qrstudio/internal/imageload"
	"github.com/sumitkumargeu/qrstudio/internal/logoset"
)

const (
	// CanvasSize is the normalized output edge: accepted icons land on a
	// white square canvas of this size.
	CanvasSize = 256

	// minIconSize rejects tracking-pixel placeholders some icon services
	// return instead of a 404.
	minIconSize = 16

	// candidateTimeout bounds each probe; the worst case for a full
	// resolution is candidates x candidateTimeout.
	candidateTimeout = 5 * time.Second
)

// Resolver probes an ordered candidate list for a usable icon. The zero
// values fall back to the package defaults; tests inject Candidates and a
// short Timeout.
type Resolver struct {
	Timeout    time.Duration
	Candidates func(domain string) []string
}

// New returns a Resolver with the default candidate sources and timeout.
func New() *Resolver {
	return &Resolver{Timeout: candidateTimeout, Candidates: defaultCandidates}
}

// defaultCandidates builds the fixed probe order for a domain: third-party
// icon services first (they normalize and cache), then well-known paths on
// the domain itself.
func defaultCandidates(domain string) []string {
	return []string{
		"https://www.google.com/s2/favicons?domain=" + domain + "&sz=128",
		"https://icons.duckduckgo.com/ip3/" + domain + ".ico",
		"https://logo.clearbit.com/" + domain,
		"https://icon.horse/icon/" + domain,
		"https://" + domain + "/apple-touch-icon.png",
		"https://" + domain + "/apple-touch-icon-precomposed.png",
		"https://" + domain + "/favicon-32x32.png",
		"https://" + domain + "/favicon.ico",
	}
}

// normalizeDomain extracts the host from a user-supplied address, defaulting
// the scheme to https when missing.
func normalizeDomain(siteURL string) (string, error) {
	v := strings.TrimSpace(siteURL)
	if v == "" {
		return "", fmt.Errorf("empty site URL")
	}
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	u, err := url.Parse(v)
	if err != nil {
		return "", fmt.Errorf("invalid site URL: %v", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("site URL has no host")
	}
	return u.Hostname(), nil
}

// Resolve probes the candidate list strictly in order, accepting the first
// icon that decodes and has usable dimensions, and normalizes it into a
// logo item. It returns nil when every candidate fails; callers treat that
// as "try uploading manually", never as a hard error.
func (r *Resolver) Resolve(ctx context.Context, siteURL string) *logoset.Item {
	domain, err := normalizeDomain(siteURL)
	if err != nil {
		return nil
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = candidateTimeout
	}
	candidates := r.Candidates
	if candidates == nil {
		candidates = defaultCandidates
	}

	for _, candidate := range candidates(domain) {
		img := imageload.Load(ctx, candidate, timeout)
		if img == nil {
			continue
		}
		bounds := img.Bounds()
		if bounds.Dx() < minIconSize || bounds.Dy() < minIconSize {
			// Placeholder-sized response, keep probing.
			continue
		}

		data, err := logoset.EncodePNGDataURI(normalizeIcon(img))
		if err != nil {
			continue
		}
		return &logoset.Item{
			ID:        "auto-" + domain,
			Name:      domain,
			Kind:      logoset.KindAuto,
			ImageData: data,
			SourceURL: candidate,
		}
	}
	return nil
}

// normalizeIcon flattens the icon onto a white CanvasSize square, scaled to
// fit while preserving aspect ratio and centered.
func normalizeIcon(src image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, CanvasSize, CanvasSize))
	white := color.RGBA{255, 255, 255, 255}
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: white}, image.Point{}, draw.Src)

	bounds := src.Bounds()
	sw, sh := bounds.Dx(), bounds.Dy()
	if sw <= 0 || sh <= 0 {
		return dst
	}

	scale := float64(CanvasSize) / float64(sw)
	if s := float64(CanvasSize) / float64(sh); s < scale {
		scale = s
	}
	tw := int(float64(sw) * scale)
	th := int(float64(sh) * scale)
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}
	ox := (CanvasSize - tw) / 2
	oy := (CanvasSize - th) / 2

	xdraw.CatmullRom.Scale(dst, image.Rect(ox, oy, ox+tw, oy+th), src, bounds, xdraw.Over, nil)
	return dst
}
