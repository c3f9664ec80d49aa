package compose

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
)

// ImageFetcher retrieves raw image bytes for embedding. Implementations
// return the payload and the declared content type, when the transport
// carries one.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (data []byte, contentType string, err error)
}

// maxImageBytes caps a single download; anything bigger than this is not a
// presentation photograph.
const maxImageBytes = 32 << 20

// HTTPFetcher fetches images over HTTP(S).
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher with a bounded per-request timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch downloads one image.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("could not create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image request failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("could not read image body: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, "", fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// imageFormat is the composer's raster format tag.
type imageFormat string

const (
	formatJPEG imageFormat = "JPG"
	formatPNG  imageFormat = "PNG"
	formatWEBP imageFormat = "WEBP"
)

// detectFormat guesses the raster format: primarily from the URL extension,
// refined by the declared content type and finally by magic-byte sniffing.
// The guess only orders the candidate decoders; a wrong guess still embeds
// through the fallback ladder.
func detectFormat(url, contentType string, data []byte) imageFormat {
	guess := formatJPEG

	lower := strings.ToLower(url)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	switch {
	case strings.HasSuffix(lower, ".png"):
		guess = formatPNG
	case strings.HasSuffix(lower, ".webp"):
		guess = formatWEBP
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		guess = formatJPEG
	}

	switch {
	case strings.Contains(contentType, "image/png"):
		guess = formatPNG
	case strings.Contains(contentType, "image/webp"):
		guess = formatWEBP
	case strings.Contains(contentType, "image/jpeg"), strings.Contains(contentType, "image/jpg"):
		guess = formatJPEG
	}

	if kind, err := filetype.Match(data); err == nil {
		switch kind {
		case matchers.TypePng:
			guess = formatPNG
		case matchers.TypeWebp:
			guess = formatWEBP
		case matchers.TypeJpeg:
			guess = formatJPEG
		}
	}
	return guess
}
