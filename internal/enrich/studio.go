package enrich

import (
	"context"
	"fmt"

	"github.com/scoutdeck/scoutdeck/internal/presentation"
	"github.com/scoutdeck/scoutdeck/internal/studio"
)

// StudioProvider delegates enrichment to the remote Studio service.
type StudioProvider struct {
	client *studio.Client
}

func NewStudioProvider(client *studio.Client) *StudioProvider {
	return &StudioProvider{client: client}
}

func (p *StudioProvider) Name() string {
	return "studio"
}

func (p *StudioProvider) Enrich(ctx context.Context, state presentation.State, opts studio.EnrichOptions) (*Result, error) {
	res, err := p.client.Enrich(ctx, state, opts)
	if err != nil {
		return nil, fmt.Errorf("studio provider: %w", err)
	}
	return &Result{State: res.Apply(state), AIApplied: res.AIApplied}, nil
}
