package maturity

import (
	"fmt"
	"strings"
)

// Result summarizes an organization's AI readiness on a 0-100 scale.
type Result struct {
	Score        int      `json:"score"`
	Level        string   `json:"level"`
	Emoji        string   `json:"emoji"`
	Color        string   `json:"color"`
	Description  string   `json:"description"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// Input carries the assessment answers the score is derived from. Readiness
// fields drive the bulk of the score; context fields only contribute bonus
// points.
type Input struct {
	Industry          string
	CompanySize       string
	StrategicThreats  []string
	CurrentChallenges string
	PrimaryGoal       string
	TopKPI            string
	Urgency           string
	Goals             string

	CurrentAIUsage string
	AICapabilities []string
	DataQuality    string
	AITalent       string
	AIBudget       string
	AIStrategy     string
}

// tier is one scoring bracket of a dimension. Tiers are checked in order and
// the first match wins; a tier may also record a strength.
type tier struct {
	match    func(string) bool
	points   int
	strength string
}

// dimension scores a single free-text answer by substring matching against
// its lowercased value. A dimension with no matching tier records an
// improvement instead of points.
type dimension struct {
	value       func(Input) string
	tiers       []tier
	improvement string
}

func anyOf(subs ...string) func(string) bool {
	return func(v string) bool {
		for _, s := range subs {
			if strings.Contains(v, s) {
				return true
			}
		}
		return false
	}
}

func allOf(subs ...string) func(string) bool {
	return func(v string) bool {
		for _, s := range subs {
			if !strings.Contains(v, s) {
				return false
			}
		}
		return true
	}
}

// Answer values come from a fixed-choice form, so matching is on the stable
// fragments of each choice. Budget checks "250" before the 50-250 bracket on
// purpose: the top bracket label is the only one mentioning "over".
var usageDim = dimension{
	value: func(in Input) string { return in.CurrentAIUsage },
	tiers: []tier{
		{anyOf("multiple", "integrated"), 25, "Multiple AI systems in production"},
		{anyOf("1-2", "production"), 15, "AI systems deployed in production"},
		{anyOf("exploring", "pilot"), 8, "Active AI exploration and pilots"},
	},
	improvement: "Start with AI pilot projects to gain experience",
}

var dataQualityDim = dimension{
	value: func(in Input) string { return in.DataQuality },
	tiers: []tier{
		{anyOf("excellent", "clean"), 20, "Excellent data infrastructure"},
		{anyOf("good", "centralized"), 12, "Good data foundation"},
		{anyOf("fair", "some"), 6, ""},
	},
	improvement: "Improve data quality and accessibility",
}

var talentDim = dimension{
	value: func(in Input) string { return in.AITalent },
	tiers: []tier{
		{anyOf("established", "team"), 20, "Dedicated AI/Data Science team"},
		{anyOf("small", "3-5"), 12, "Growing AI talent pool"},
		{anyOf("1-2"), 6, ""},
	},
	improvement: "Hire or train AI/Data Science talent",
}

var budgetDim = dimension{
	value: func(in Input) string { return in.AIBudget },
	tiers: []tier{
		{anyOf("250", "over"), 10, "Strong AI investment commitment"},
		{allOf("50", "250"), 6, ""},
		{anyOf("50"), 3, ""},
	},
	improvement: "Allocate dedicated AI budget",
}

var strategyDim = dimension{
	value: func(in Input) string { return in.AIStrategy },
	tiers: []tier{
		{anyOf("yes", "documented", "executive"), 10, "Formal AI strategy with executive support"},
		{anyOf("development", "being developed"), 6, ""},
		{anyOf("informal"), 3, ""},
	},
	improvement: "Develop a formal AI strategy and roadmap",
}

var levels = []struct {
	min         int
	level       string
	emoji       string
	color       string
	description string
}{
	{76, "Leader", "🚀", "#10B981", "Your organization shows strong AI readiness with clear strategy and commitment. Ready for advanced AI implementations."},
	{51, "Advanced", "🌳", "#3B82F6", "Good AI readiness with solid foundation. Focus on execution and quick wins to build momentum."},
	{26, "Developing", "🌿", "#F59E0B", "Growing AI awareness. Strengthen your strategy and define clear goals before large investments."},
	{0, "Beginner", "🌱", "#EF4444", "Early AI journey. Focus on education, small pilots, and building internal awareness before scaling."},
}

// Calculate scores AI readiness deterministically from assessment answers.
// The same input always yields the same result; no model call is involved.
func Calculate(in Input) Result {
	score := 0
	var strengths []string
	var improvements []string

	apply := func(d dimension) {
		v := strings.ToLower(d.value(in))
		for _, t := range d.tiers {
			if t.match(v) {
				score += t.points
				if t.strength != "" {
					strengths = append(strengths, t.strength)
				}
				return
			}
		}
		improvements = append(improvements, d.improvement)
	}

	apply(usageDim)

	// Capabilities are scored by count of real selections. "None yet" is a
	// form choice, not a capability.
	capCount := 0
	for _, c := range in.AICapabilities {
		if c != "" && c != "None yet" {
			capCount++
		}
	}
	switch {
	case capCount >= 4:
		score += 15
		strengths = append(strengths, fmt.Sprintf("Diverse AI capabilities (%d types in use)", capCount))
	case capCount >= 2:
		score += 10
	case capCount >= 1:
		score += 5
	default:
		improvements = append(improvements, "Implement your first AI capability")
	}

	apply(dataQualityDim)
	apply(talentDim)
	apply(budgetDim)
	apply(strategyDim)

	// Context bonuses.
	switch threats := len(in.StrategicThreats); {
	case threats >= 3:
		score += 3
	case threats >= 1:
		score += 1
	}
	if in.PrimaryGoal != "" && in.TopKPI != "" {
		score += 2
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	res := Result{Score: score}
	for _, l := range levels {
		if score >= l.min {
			res.Level = l.level
			res.Emoji = l.emoji
			res.Color = l.color
			res.Description = l.description
			break
		}
	}

	// Always surface something actionable.
	switch len(improvements) {
	case 0:
		improvements = append(improvements,
			"Continue building on current AI strategy",
			"Explore emerging AI technologies relevant to your industry")
	case 1:
		improvements = append(improvements, "Document lessons learned for future projects")
	}

	if len(strengths) > 5 {
		strengths = strengths[:5]
	}
	if len(improvements) > 3 {
		improvements = improvements[:3]
	}
	res.Strengths = strengths
	res.Improvements = improvements
	return res
}
