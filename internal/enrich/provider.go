// Package enrich rewrites presentation content with an AI backend: page
// titles, location notes and missing photo captions. The remote Studio
// service is the primary backend; OpenAI and Gemini providers run the same
// passes directly so enrichment keeps working when Studio is unreachable.
package enrich

import (
	"context"

	"github.com/scoutdeck/scoutdeck/internal/presentation"
	"github.com/scoutdeck/scoutdeck/internal/studio"
)

// Result carries the rewritten state and whether any AI pass actually ran.
type Result struct {
	State     presentation.State
	AIApplied bool
}

// Provider defines the interface for enrichment backends.
type Provider interface {
	Name() string
	Enrich(ctx context.Context, state presentation.State, opts studio.EnrichOptions) (*Result, error)
}

// contentRewrite is the JSON document the local model providers are asked to
// produce. Sections the model leaves empty are not applied.
type contentRewrite struct {
	CoverTitle       string           `json:"cover_title,omitempty"`
	ExecutiveSummary string           `json:"executive_summary,omitempty"`
	Pages            []pageRewrite    `json:"pages"`
	Captions         []captionRewrite `json:"captions"`
}

type pageRewrite struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Notes string `json:"notes"`
}

type captionRewrite struct {
	ID      string `json:"id"`
	Caption string `json:"caption"`
}

// applyRewrite merges the model output into the state, honoring the option
// switches: titles and notes only replace when their pass is enabled, and
// captions never overwrite one a scout already wrote.
func applyRewrite(state presentation.State, rw contentRewrite, opts studio.EnrichOptions) (presentation.State, bool) {
	changed := false

	pagesByID := make(map[string]int, len(state.Pages))
	for i, p := range state.Pages {
		pagesByID[p.ID] = i
	}
	for _, pr := range rw.Pages {
		i, ok := pagesByID[pr.ID]
		if !ok {
			continue
		}
		if opts.ImproveTitles && pr.Title != "" && pr.Title != state.Pages[i].Title {
			state.Pages[i].Title = pr.Title
			changed = true
		}
		if opts.GenerateNotes && pr.Notes != "" && pr.Notes != state.Pages[i].Notes {
			state.Pages[i].Notes = pr.Notes
			changed = true
		}
	}

	if opts.FillMissingCaptions {
		photosByID := make(map[string]int, len(state.Photos))
		for i, p := range state.Photos {
			photosByID[p.ID] = i
		}
		for _, cr := range rw.Captions {
			i, ok := photosByID[cr.ID]
			if !ok || cr.Caption == "" {
				continue
			}
			if state.Photos[i].Caption == "" {
				state.Photos[i].Caption = cr.Caption
				changed = true
			}
		}
	}

	if opts.ImproveTitles && rw.CoverTitle != "" && rw.CoverTitle != state.Cover.Title {
		state.Cover.Title = rw.CoverTitle
		changed = true
	}
	if opts.ExecutiveSummary && rw.ExecutiveSummary != "" && rw.ExecutiveSummary != state.Cover.Subtitle {
		state.Cover.Subtitle = rw.ExecutiveSummary
		changed = true
	}

	return state, changed
}
