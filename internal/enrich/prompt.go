package enrich

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scoutdeck/scoutdeck/internal/presentation"
	"github.com/scoutdeck/scoutdeck/internal/studio"
)

//go:embed prompts/content_rewrite.txt
var contentRewritePrompt string

// buildSystemPrompt fills the prompt template with the passes the caller
// enabled.
func buildSystemPrompt(opts studio.EnrichOptions) string {
	var parts []string
	if opts.ImproveTitles {
		parts = append(parts, "improve titles")
	}
	if opts.GenerateNotes {
		parts = append(parts, "generate notes")
	}
	if opts.FillMissingCaptions {
		parts = append(parts, "fill missing captions")
	}
	if opts.ExecutiveSummary {
		parts = append(parts, "executive summary")
	}
	if len(parts) == 0 {
		parts = append(parts, "none")
	}
	return fmt.Sprintf(contentRewritePrompt, strings.Join(parts, ", "))
}

// promptPayload is the trimmed presentation view the model sees: content
// fields only, no URLs or geometry.
type promptPayload struct {
	Cover struct {
		Title    string `json:"title"`
		Subtitle string `json:"subtitle"`
	} `json:"cover"`
	Pages  []promptPage  `json:"pages"`
	Photos []promptPhoto `json:"photos"`
}

type promptPage struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Notes    string   `json:"notes"`
	PhotoIDs []string `json:"photo_ids"`
}

type promptPhoto struct {
	ID      string `json:"id"`
	Caption string `json:"caption"`
}

// buildUserMessage serializes the presentation content for the model.
func buildUserMessage(state presentation.State) (string, error) {
	var payload promptPayload
	payload.Cover.Title = state.Cover.Title
	payload.Cover.Subtitle = state.Cover.Subtitle
	for _, p := range state.Pages {
		payload.Pages = append(payload.Pages, promptPage{
			ID:       p.ID,
			Title:    p.Title,
			Notes:    p.Notes,
			PhotoIDs: p.PhotoIDs,
		})
	}
	for _, p := range state.Photos {
		payload.Photos = append(payload.Photos, promptPhoto{ID: p.ID, Caption: p.Caption})
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("could not marshal presentation content: %w", err)
	}
	return string(data), nil
}
