package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/scoutdeck/scoutdeck/internal/presentation"
	"github.com/scoutdeck/scoutdeck/internal/studio"
)

const geminiModel = "gemini-2.5-flash"

// GeminiProvider runs the enrichment passes against the Gemini API.
type GeminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

func (p *GeminiProvider) Name() string {
	return geminiModel
}

func (p *GeminiProvider) Enrich(ctx context.Context, state presentation.State, opts studio.EnrichOptions) (*Result, error) {
	userMessage, err := buildUserMessage(state)
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: buildSystemPrompt(opts) + "\n\n" + userMessage},
			},
		},
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	result, err := p.client.Models.GenerateContent(ctx, geminiModel, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	content := result.Text()
	if content == "" {
		return nil, errors.New("no response from Gemini")
	}

	var rw contentRewrite
	if err := json.Unmarshal([]byte(content), &rw); err != nil {
		return nil, fmt.Errorf("failed to parse rewrite JSON: %w (response: %s)", err, content)
	}

	merged, changed := applyRewrite(state, rw, opts)
	return &Result{State: merged, AIApplied: changed}, nil
}
