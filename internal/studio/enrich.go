package studio

import (
	"context"
	"fmt"

	"github.com/scoutdeck/scoutdeck/internal/presentation"
)

// EnrichOptions selects which enrichment passes Studio runs.
type EnrichOptions struct {
	ImproveTitles       bool `json:"improveTitles"`
	GenerateNotes       bool `json:"generateNotes"`
	FillMissingCaptions bool `json:"fillMissingCaptions"`
	ExecutiveSummary    bool `json:"executiveSummary"`
}

// DefaultEnrichOptions enables everything except the executive summary.
func DefaultEnrichOptions() EnrichOptions {
	return EnrichOptions{
		ImproveTitles:       true,
		GenerateNotes:       true,
		FillMissingCaptions: true,
		ExecutiveSummary:    false,
	}
}

type enrichRequest struct {
	Presentation presentationPayload `json:"presentation"`
	Options      EnrichOptions       `json:"options"`
}

// EnrichResult carries the sections Studio rewrote. Nil/absent sections were
// left untouched; AIApplied reports whether any AI pass actually ran.
type EnrichResult struct {
	Cover     *presentation.Cover       `json:"cover"`
	Summary   *presentation.Summary     `json:"summary"`
	Pages     []presentation.Page       `json:"pages"`
	Photos    []presentation.PhotoAsset `json:"photos"`
	AIApplied bool                      `json:"aiApplied"`
}

// Enrich sends the presentation to Studio for content enrichment.
func (c *Client) Enrich(ctx context.Context, state presentation.State, opts EnrichOptions) (*EnrichResult, error) {
	req := enrichRequest{
		Presentation: payloadFromState(state),
		Options:      opts,
	}
	result, err := doPostJSON[EnrichResult](ctx, c, "presentation/enrich", req)
	if err != nil {
		return nil, fmt.Errorf("studio enrich: %w", err)
	}
	return result, nil
}

// Apply merges the enriched sections into the state, leaving untouched
// sections as they were.
func (r *EnrichResult) Apply(state presentation.State) presentation.State {
	if r.Cover != nil {
		state.Cover = *r.Cover
	}
	if r.Summary != nil {
		state.Summary = *r.Summary
	}
	if r.Pages != nil {
		state.Pages = r.Pages
	}
	if r.Photos != nil {
		state.Photos = r.Photos
	}
	return state
}
