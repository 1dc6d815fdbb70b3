package assets

import (
	"context"
	"fmt"
	"image"
	_ "image/gif" // Register decoders for image.Decode
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"github.com/vovakirdan/setfall/internal/core"
)

// maxImageBytes caps a single icon download.
const maxImageBytes = 2 << 20

// HTTPLoader fetches icons over HTTP and decodes PNG, JPEG or GIF data.
type HTTPLoader struct {
	Client *http.Client
}

// NewHTTPLoader creates a loader with a bounded request timeout.
func NewHTTPLoader(timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{Client: &http.Client{Timeout: timeout}}
}

// Load implements Loader.
func (l *HTTPLoader) Load(ctx context.Context, url string) (Image, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Image{}, fmt.Errorf("assets: bad request for %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return Image{}, fmt.Errorf("assets: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Image{}, fmt.Errorf("assets: fetch %s: status %d", url, resp.StatusCode)
	}

	return Decode(io.LimitReader(resp.Body, maxImageBytes))
}

// Decode reads an image and reduces it to its dominant color.
func Decode(r io.Reader) (Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return Image{}, fmt.Errorf("assets: decode: %w", err)
	}
	b := img.Bounds()
	return Image{
		Width:  b.Dx(),
		Height: b.Dy(),
		Color:  dominantColor(img),
	}, nil
}

// dominantColor averages the opaque pixels of img and maps the result to the
// terminal palette. Fully transparent images map to gray.
func dominantColor(img image.Image) core.Color {
	b := img.Bounds()
	var sumR, sumG, sumB, n uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if a < 0x8000 {
				continue
			}
			sumR += uint64(r >> 8)
			sumG += uint64(g >> 8)
			sumB += uint64(bl >> 8)
			n++
		}
	}
	if n == 0 {
		return core.ColorGray
	}
	return core.NearestColor(uint8(sumR/n), uint8(sumG/n), uint8(sumB/n))
}
