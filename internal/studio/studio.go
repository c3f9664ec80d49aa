// Package studio is the HTTP client for the remote Studio service, the
// collaborator that enriches presentation content with AI and renders
// server-side exports.
package studio

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/scoutdeck/scoutdeck/internal/presentation"
)

// Client talks to one Studio instance.
type Client struct {
	Url       string
	parsedURL *url.URL
	token     string
	client    *http.Client
}

// New creates a Studio client. The token may be empty when the instance does
// not require authentication.
func New(rawURL, token string) (*Client, error) {
	apiURL := rawURL + "/api/v1"
	parsed, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Studio URL: %w", err)
	}
	return &Client{
		Url:       apiURL,
		parsedURL: parsed,
		token:     token,
		client:    &http.Client{Timeout: 120 * time.Second},
	}, nil
}

// resolveURL builds a full URL from the base API URL and the given path
// segments. If the last segment contains a query string, it is split so
// JoinPath only receives the path portion and the query is appended.
func (c *Client) resolveURL(pathSegments ...string) string {
	if len(pathSegments) == 0 {
		return c.parsedURL.String()
	}
	last := pathSegments[len(pathSegments)-1]
	if pathPart, query, ok := strings.Cut(last, "?"); ok {
		pathSegments[len(pathSegments)-1] = pathPart
		result := c.parsedURL.JoinPath(pathSegments...)
		result.RawQuery = query
		return result.String()
	}
	return c.parsedURL.JoinPath(pathSegments...).String()
}

// presentationPayload is the presentation snapshot sent to every Studio
// endpoint.
type presentationPayload struct {
	Cover   presentation.Cover        `json:"cover"`
	Summary presentation.Summary      `json:"summary"`
	Pages   []presentation.Page       `json:"pages"`
	Photos  []presentation.PhotoAsset `json:"photos"`
}

func payloadFromState(state presentation.State) presentationPayload {
	return presentationPayload{
		Cover:   state.Cover,
		Summary: state.Summary,
		Pages:   state.Pages,
		Photos:  state.Photos,
	}
}

// readErrorBody reads the response body for error messages.
// Returns a marker string if reading fails (we're already in an error path).
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(r)
	if err != nil {
		return "(could not read error body)"
	}
	return string(body)
}
