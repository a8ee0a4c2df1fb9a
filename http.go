package readability

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrUnknownImageSize is returned by an ImageProber that couldn't find
// the size of an image.
var ErrUnknownImageSize = errors.New("unknown image size")

// maxProbeBytes is how much of an image is read to find its size. Every
// supported format stores it in the header.
const maxProbeBytes = 1 << 20

// ImageProber finds the size of a remote image.
type ImageProber interface {
	ProbeImage(ctx context.Context, url string) (width, height int, err error)
}

// ImageProberFunc adapts a function to ImageProber.
type ImageProberFunc func(ctx context.Context, url string) (int, int, error)

func (f ImageProberFunc) ProbeImage(ctx context.Context, url string) (int, int, error) {
	return f(ctx, url)
}

// HTTPProber downloads the start of an image and decodes its header.
type HTTPProber struct {
	Client    *http.Client
	UserAgent string
}

// NewHTTPProber returns an HTTPProber whose requests time out after timeout.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	return &HTTPProber{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: "Mozilla/5.0 (compatible; go-readability-classic)",
	}
}

// ProbeImage returns the size of the image at url. Every error wraps
// ErrUnknownImageSize.
func (p *HTTPProber) ProbeImage(ctx context.Context, url string) (int, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrUnknownImageSize, err)
	}
	if p.UserAgent != "" {
		req.Header.Set("User-Agent", p.UserAgent)
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrUnknownImageSize, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, 0, fmt.Errorf("%w: unexpected status %d for %s", ErrUnknownImageSize, resp.StatusCode, url)
	}

	config, _, err := image.DecodeConfig(bufio.NewReader(io.LimitReader(resp.Body, maxProbeBytes)))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s: %w", ErrUnknownImageSize, url, err)
	}
	return config.Width, config.Height, nil
}
