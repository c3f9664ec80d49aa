package studio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/scoutdeck/scoutdeck/internal/presentation"
)

// ExportOptions tunes the server-side render.
type ExportOptions struct {
	UseAI bool `json:"useAI"`
}

type exportRequest struct {
	Presentation  presentationPayload `json:"presentation"`
	ExportOptions ExportOptions       `json:"exportOptions"`
}

// ExportKind discriminates the two shapes the export endpoint can answer
// with.
type ExportKind int

const (
	// ExportDocument means Studio rendered a finished binary document.
	ExportDocument ExportKind = iota
	// ExportHTMLFallback means Studio could not render a binary and answered
	// with standalone HTML markup instead.
	ExportHTMLFallback
)

// ExportResult is the polymorphic export answer. Exactly one payload field
// is set, selected by Kind.
type ExportResult struct {
	Kind     ExportKind
	Document []byte
	HTML     string
}

// htmlFallbackResponse is the JSON body Studio sends when it degrades to
// markup.
type htmlFallbackResponse struct {
	Status string `json:"status"`
	HTML   string `json:"html"`
}

// Export asks Studio to render the presentation server-side. The answer is
// discriminated on the response content type: a JSON body is the HTML
// fallback envelope, anything else is the rendered document itself.
func (c *Client) Export(ctx context.Context, state presentation.State, opts ExportOptions) (*ExportResult, error) {
	req := exportRequest{
		Presentation:  payloadFromState(state),
		ExportOptions: opts,
	}

	resp, err := doPost(ctx, c, "presentation/export", req)
	if err != nil {
		return nil, fmt.Errorf("studio export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("studio export failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read export response: %w", err)
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var fallback htmlFallbackResponse
		if err := json.Unmarshal(body, &fallback); err != nil {
			return nil, fmt.Errorf("could not unmarshal export fallback: %w", err)
		}
		if fallback.Status != "html-fallback" {
			return nil, fmt.Errorf("unexpected export response status %q", fallback.Status)
		}
		return &ExportResult{Kind: ExportHTMLFallback, HTML: fallback.HTML}, nil
	}

	return &ExportResult{Kind: ExportDocument, Document: body}, nil
}
