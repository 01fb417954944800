// Package research implements the two-phase generation strategy: a market
// research pass followed by a grounded recommendation pass.
package research

import (
	"context"
	"fmt"

	"assessment-backend/internal/generation"
	"assessment-backend/internal/shared/telemetry"
)

// Researcher produces the market research bundle (phase one).
type Researcher interface {
	Research(ctx context.Context, in generation.Input) (*generation.ResearchResult, error)
}

// Generator produces recommendations from assessment data plus research
// context (phase two).
type Generator interface {
	GenerateWithResearch(ctx context.Context, in generation.Input, research *generation.ResearchResult) (*generation.Result, error)
}

// Provider chains Researcher and Generator. A phase-one failure aborts the
// whole generation: there is no recommendation without research in this mode.
type Provider struct {
	researcher Researcher
	generator  Generator
}

// New constructs the two-phase provider.
func New(researcher Researcher, generator Generator) *Provider {
	return &Provider{researcher: researcher, generator: generator}
}

func (p *Provider) Generate(ctx context.Context, in generation.Input) (*generation.Result, error) {
	research, err := p.researcher.Research(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("research phase: %w", err)
	}

	telemetry.Info("generation.research_complete", map[string]any{
		"key_opportunities": len(research.KeyOpportunities),
		"success_cases":     len(research.SuccessCases),
	})

	result, err := p.generator.GenerateWithResearch(ctx, in, research)
	if err != nil {
		return nil, fmt.Errorf("strategy phase: %w", err)
	}
	return result, nil
}

var _ generation.Provider = (*Provider)(nil)
