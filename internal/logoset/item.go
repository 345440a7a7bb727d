// Package logoset models the logo catalogue: items produced by uploads, by
// favicon resolution, or predefined presets.
package logoset

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// Kind records how a logo item came to exist.
type Kind string

const (
	KindPreset Kind = "preset"
	KindCustom Kind = "custom"
	KindAuto   Kind = "auto"
)

// Item is one entry of a caller-held logo collection. ImageData holds the
// raster as a data URI; preset items may leave it empty and carry only a
// SourceURL, to be resolved on demand.
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      Kind   `json:"kind"`
	ImageData string `json:"imageData,omitempty"`
	SourceURL string `json:"sourceUrl,omitempty"`
}

// Presets are the built-in logo suggestions shown before any upload or
// favicon lookup. Their image data is resolved lazily through the favicon
// engine using SourceURL.
var Presets = []Item{
	{ID: "preset-github", Name: "GitHub", Kind: KindPreset, SourceURL: "https://github.com"},
	{ID: "preset-youtube", Name: "YouTube", Kind: KindPreset, SourceURL: "https://youtube.com"},
	{ID: "preset-linkedin", Name: "LinkedIn", Kind: KindPreset, SourceURL: "https://linkedin.com"},
	{ID: "preset-instagram", Name: "Instagram", Kind: KindPreset, SourceURL: "https://instagram.com"},
}

// EncodePNGDataURI serializes img as a PNG data URI suitable for ImageData.
func EncodePNGDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode logo png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Image decodes the item's data URI back into an image. Items without image
// data return an error; callers resolve those through their SourceURL first.
func (it *Item) Image() (image.Image, error) {
	if it.ImageData == "" {
		return nil, fmt.Errorf("logo item %q has no image data", it.ID)
	}
	payload := it.ImageData
	if idx := strings.Index(payload, ","); idx >= 0 {
		payload = payload[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode logo data: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode logo image: %v", err)
	}
	return img, nil
}
