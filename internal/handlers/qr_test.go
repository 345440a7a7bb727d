package handlers

import (
	"bytes"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New()
	r.GET("/api/qr", h.QRCodeHandler)
	return r
}

func getQR(t *testing.T, r *gin.Engine, query string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/qr?"+query, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestQRCodeHandlerRendersStyledPNG(t *testing.T) {
	r := newTestRouter()
	w := getQR(t, r, "url=example.com&style=dots&fg=000000&bg=ffffff")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q", ct)
	}

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not a decodable PNG: %v", err)
	}
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	if width != height {
		t.Fatalf("render is %dx%d, want square", width, height)
	}
	// The base render is dimension x moduleSize with no writer border, so
	// the cell size derived from the encoder dimension divides evenly.
	if width%previewModuleSize != 0 {
		t.Fatalf("width %d is not a multiple of the preview module size", width)
	}
	if dim := width / previewModuleSize; dim < 21 {
		t.Fatalf("implied module count %d is below the smallest QR version", dim)
	}

	// A styled render carries both module ink and background.
	var dark, light int
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			switch {
			case cr == 0 && cg == 0 && cb == 0:
				dark++
			case cr>>8 == 255 && cg>>8 == 255 && cb>>8 == 255:
				light++
			}
		}
	}
	if dark == 0 || light == 0 {
		t.Fatalf("render has %d dark and %d light pixels, want both", dark, light)
	}
}

func TestQRCodeHandlerPreviewSize(t *testing.T) {
	r := newTestRouter()
	w := getQR(t, r, "url=example.com&style=rounded&previewSize=400")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 400 {
		t.Fatalf("preview render = %v, want 400x400", img.Bounds())
	}
}

func TestQRCodeHandlerRejectsBadParams(t *testing.T) {
	r := newTestRouter()
	cases := []string{
		"",
		"url=ftp://example.com",
		"url=example.com&style=zigzag",
		"url=example.com&logoShape=hexagon",
		"url=example.com&logoLayout=sidebar",
	}
	for _, query := range cases {
		if w := getQR(t, r, query); w.Code != http.StatusBadRequest {
			t.Errorf("query %q: status = %d, want 400", query, w.Code)
		}
	}
}

func TestNormalizeHTTPURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"example.com", "https://example.com"},
		{"http://example.com/a?b=1", "http://example.com/a?b=1"},
		{"  example.com  ", "https://example.com"},
	}
	for _, tt := range tests {
		got, err := normalizeHTTPURL(tt.in)
		if err != nil {
			t.Errorf("normalizeHTTPURL(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("normalizeHTTPURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "ftp://example.com", "https://"} {
		if _, err := normalizeHTTPURL(bad); err == nil {
			t.Errorf("normalizeHTTPURL(%q) accepted invalid input", bad)
		}
	}
}

func TestParseColorParam(t *testing.T) {
	def := color.RGBA{1, 2, 3, 255}
	if got := parseColorParam("", def); got != def {
		t.Errorf("empty param = %v, want default", got)
	}
	if got := parseColorParam("#ff8000", def); got != (color.RGBA{255, 128, 0, 255}) {
		t.Errorf("#ff8000 = %v", got)
	}
	if got := parseColorParam("ff8000", def); got != (color.RGBA{255, 128, 0, 255}) {
		t.Errorf("ff8000 = %v", got)
	}
	if got := parseColorParam("transparent", def); got.A != 0 {
		t.Errorf("transparent alpha = %d, want 0", got.A)
	}
	if got := parseColorParam("zzz", def); got != def {
		t.Errorf("malformed param = %v, want default", got)
	}
}

func TestClampPercent(t *testing.T) {
	if got := clampPercent("15", 10, 25); got != 15 {
		t.Errorf("clampPercent(15) = %v", got)
	}
	if got := clampPercent("50", 10, 25); got != 25 {
		t.Errorf("clampPercent(50) = %v, want 25", got)
	}
	if got := clampPercent("3", 10, 25); got != 10 {
		t.Errorf("clampPercent(3) = %v, want 10", got)
	}
	if got := clampPercent("junk", 10, 25); got != 10 {
		t.Errorf("clampPercent(junk) = %v, want lower bound", got)
	}
}
