package assessments

import (
	"time"

	"assessment-backend/internal/generation"
)

// Assessment is one form submission and its generated results. Optional
// answers are empty strings; MaturityScore is nil until processing writes it.
type Assessment struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	CompanyName  string `json:"companyName,omitempty"`
	Website      string `json:"website,omitempty"`
	Industry     string `json:"industry,omitempty"`
	IndustrySlug string `json:"industrySlug,omitempty"`
	Country      string `json:"country,omitempty"`
	CompanySize  string `json:"companySize,omitempty"`
	Role         string `json:"role,omitempty"`

	StrategicThreats  []string `json:"strategicThreats"`
	CurrentChallenges string   `json:"currentChallenges,omitempty"`

	PrimaryGoal string `json:"primaryGoal,omitempty"`
	TopKPI      string `json:"topKPI,omitempty"`
	Urgency     string `json:"urgency,omitempty"`
	Goals       string `json:"goals,omitempty"`

	CurrentAIUsage string   `json:"currentAIUsage,omitempty"`
	AICapabilities []string `json:"aiCapabilities"`
	DataQuality    string   `json:"dataQuality,omitempty"`
	AITalent       string   `json:"aiTalent,omitempty"`
	AIBudget       string   `json:"aiBudget,omitempty"`
	AIStrategy     string   `json:"aiStrategy,omitempty"`

	TopProjects   []generation.ProjectRecommendation `json:"topProjects,omitempty"`
	ROIEstimates  *ROIEstimates                      `json:"roiEstimates,omitempty"`
	ActionPlan    *generation.ActionPlan             `json:"actionPlan,omitempty"`
	CrewReport    string                             `json:"crewaiReport,omitempty"`
	MaturityScore *int                               `json:"aiMaturityScore,omitempty"`
	MaturityLevel string                             `json:"aiMaturityLevel,omitempty"`

	FormResponses map[string]any `json:"formResponses,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ROIEstimates summarizes per-project ROI strings for quick display.
// Slots for missing projects hold "N/A".
type ROIEstimates struct {
	Project1 string `json:"project1"`
	Project2 string `json:"project2"`
	Project3 string `json:"project3"`
}

// CompletionUpdate carries the generated results written when processing
// finishes.
type CompletionUpdate struct {
	TopProjects   []generation.ProjectRecommendation
	ROIEstimates  ROIEstimates
	ActionPlan    generation.ActionPlan
	CrewReport    string
	MaturityScore int
	MaturityLevel string
}
