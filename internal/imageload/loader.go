// Package imageload is the shared "load an external image under timeout"
// primitive. It resolves to a decoded image on success and to nil on decode
// failure or timeout; expected absence is never an error.
package imageload

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// DefaultTimeout bounds a single load when the caller has no preference.
const DefaultTimeout = 5 * time.Second

// maxImageBytes caps remote payloads so a misbehaving source cannot make the
// loader buffer unbounded data.
const maxImageBytes = 10 << 20

// Load fetches and decodes the image at uri, which may be an http(s) URL or a
// data: URI. It races the decode against the timeout: whichever finishes
// first wins and the loser's eventual completion is discarded. Returns nil on
// any failure or timeout. No retries happen at this layer.
func Load(ctx context.Context, uri string, timeout time.Duration) image.Image {
	if uri == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	lctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Buffered so the losing branch can complete and be discarded without
	// leaking the goroutine.
	done := make(chan image.Image, 1)
	go func() {
		img, err := fetchAndDecode(lctx, uri)
		if err != nil {
			done <- nil
			return
		}
		done <- img
	}()

	select {
	case img := <-done:
		return img
	case <-lctx.Done():
		return nil
	}
}

func fetchAndDecode(ctx context.Context, uri string) (image.Image, error) {
	if strings.HasPrefix(uri, "data:") {
		return decodeDataURI(uri)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %v", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", uri, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %v", uri, err)
	}
	return decodeBytes(data, resp.Header.Get("Content-Type"))
}

func decodeDataURI(uri string) (image.Image, error) {
	idx := strings.Index(uri, ",")
	if idx < 0 {
		return nil, fmt.Errorf("malformed data URI")
	}
	meta, payload := uri[len("data:"):idx], uri[idx+1:]

	var data []byte
	var err error
	if strings.Contains(meta, "base64") {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decode data URI: %v", err)
		}
	} else {
		data = []byte(payload)
	}
	return decodeBytes(data, meta)
}

func decodeBytes(data []byte, contentType string) (image.Image, error) {
	if isSVG(data, contentType) {
		return rasterizeSVG(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %v", err)
	}
	return img, nil
}

func isSVG(data []byte, contentType string) bool {
	if strings.Contains(contentType, "svg") {
		return true
	}
	head := bytes.TrimSpace(data)
	if len(head) > 256 {
		head = head[:256]
	}
	return bytes.HasPrefix(head, []byte("<svg")) ||
		(bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg")))
}

// rasterizeSVG renders vector logo payloads to a raster at their intrinsic
// viewbox size, falling back to 256px when the viewbox is degenerate.
func rasterizeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %v", err)
	}

	w := int(icon.ViewBox.W)
	h := int(icon.ViewBox.H)
	if w <= 0 || h <= 0 {
		w, h = 256, 256
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return rgba, nil
}
