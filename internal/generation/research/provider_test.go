package research

import (
	"context"
	"errors"
	"testing"

	"assessment-backend/internal/generation"
)

type stubResearcher struct {
	result *generation.ResearchResult
	err    error
	calls  int
}

func (s *stubResearcher) Research(ctx context.Context, in generation.Input) (*generation.ResearchResult, error) {
	s.calls++
	return s.result, s.err
}

type stubGenerator struct {
	result   *generation.Result
	err      error
	calls    int
	gotInput generation.Input
	gotRes   *generation.ResearchResult
}

func (s *stubGenerator) GenerateWithResearch(ctx context.Context, in generation.Input, research *generation.ResearchResult) (*generation.Result, error) {
	s.calls++
	s.gotInput = in
	s.gotRes = research
	return s.result, s.err
}

func TestGenerateChainsPhases(t *testing.T) {
	research := &generation.ResearchResult{IndustryInsights: "insights"}
	want := &generation.Result{ExecutiveSummary: "summary"}
	researcher := &stubResearcher{result: research}
	generator := &stubGenerator{result: want}

	p := New(researcher, generator)
	in := generation.Input{CompanyName: "Acme Corp"}
	got, err := p.Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != want {
		t.Fatalf("unexpected result: %+v", got)
	}
	if generator.gotRes != research {
		t.Fatalf("research bundle not passed to generator")
	}
	if generator.gotInput.CompanyName != "Acme Corp" {
		t.Fatalf("input not passed to generator")
	}
}

func TestGenerateResearchFailureAborts(t *testing.T) {
	wantErr := &generation.Error{Code: generation.CodeBackend, Op: "gemini.research", Err: errors.New("boom")}
	researcher := &stubResearcher{err: wantErr}
	generator := &stubGenerator{}

	p := New(researcher, generator)
	_, err := p.Generate(context.Background(), generation.Input{})
	if err == nil {
		t.Fatal("expected error")
	}
	var genErr *generation.Error
	if !errors.As(err, &genErr) || genErr.Code != generation.CodeBackend {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
	if generator.calls != 0 {
		t.Fatalf("generator should not run after research failure, ran %d times", generator.calls)
	}
}

func TestGenerateStrategyFailurePropagates(t *testing.T) {
	researcher := &stubResearcher{result: &generation.ResearchResult{}}
	generator := &stubGenerator{err: errors.New("strategy boom")}

	p := New(researcher, generator)
	_, err := p.Generate(context.Background(), generation.Input{})
	if err == nil || researcher.calls != 1 {
		t.Fatalf("expected propagated error after research ran, got %v", err)
	}
}
