package generation

import (
	"context"
	"errors"
	"fmt"
)

// Input carries the normalized assessment answers a strategy works from.
// Optional answers are empty strings; list answers are empty slices.
type Input struct {
	CompanyName string
	Website     string
	Industry    string
	Country     string
	CompanySize string
	Role        string

	StrategicThreats  []string
	CurrentChallenges string

	PrimaryGoal string
	TopKPI      string
	Urgency     string
	Goals       string

	CurrentAIUsage string
	AICapabilities []string
	DataQuality    string
	AITalent       string
	AIBudget       string
	AIStrategy     string
}

// ActionPlan is a 30/60/90 day roadmap.
type ActionPlan struct {
	Days30 []string `json:"days30"`
	Days60 []string `json:"days60"`
	Days90 []string `json:"days90"`
}

// ProjectRecommendation is one recommended AI initiative. ROI, cost and
// timeframe are display strings as produced by the backend; they are never
// parsed numerically.
type ProjectRecommendation struct {
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	EstimatedROI    string      `json:"estimatedROI"`
	TimeToImplement string      `json:"timeToImplement"`
	TotalCost       string      `json:"totalCost,omitempty"`
	Priority        string      `json:"priority"`
	Benefits        []string    `json:"benefits,omitempty"`
	Assumptions     []string    `json:"assumptions,omitempty"`
	Risks           []string    `json:"risks,omitempty"`
	Timeline        *ActionPlan `json:"timeline,omitempty"`
}

// Result is the shared output shape every strategy converges on.
// RawReport is only set by strategies that produce a full text report.
type Result struct {
	TopProjects      []ProjectRecommendation `json:"topProjects"`
	ActionPlan       ActionPlan              `json:"actionPlan"`
	ExecutiveSummary string                  `json:"executiveSummary"`
	RawReport        string                  `json:"-"`
}

// ResearchResult is the market research bundle produced by the research
// phase of the two-phase strategy.
type ResearchResult struct {
	IndustryInsights   string   `json:"industryInsights"`
	CompetitorAnalysis string   `json:"competitorAnalysis"`
	MarketTrends       string   `json:"marketTrends"`
	KeyOpportunities   []string `json:"keyOpportunities"`
	SuccessCases       []string `json:"successCases"`
	BenchmarkData      struct {
		TypicalROI          string `json:"typicalROI"`
		ImplementationCosts string `json:"implementationCosts"`
		TimeToValue         string `json:"timeToValue"`
	} `json:"benchmarkData"`
}

// Provider is one generation strategy. Implementations differ in latency and
// failure modes but all return the same Result shape.
type Provider interface {
	Generate(ctx context.Context, in Input) (*Result, error)
}

// Error codes distinguishing failure causes across strategies.
const (
	CodeBackend    = "backend"
	CodeTimeout    = "timeout"
	CodeSchema     = "schema"
	CodeSubprocess = "subprocess"
)

// Error wraps a generation failure with its cause category and the
// operation that produced it.
type Error struct {
	Code string
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrNotConfigured is returned by the placeholder provider.
var ErrNotConfigured = errors.New("generation provider not configured")

// Placeholder is a stub provider used when no backend credentials are set.
type Placeholder struct{}

func (Placeholder) Generate(ctx context.Context, in Input) (*Result, error) {
	_ = ctx
	_ = in
	return nil, ErrNotConfigured
}
