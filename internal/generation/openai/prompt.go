package openai

import (
	"fmt"
	"strings"

	"assessment-backend/internal/generation"
)

const systemPrompt = "You are an expert AI business consultant with deep expertise in AI transformation strategies. " +
	"You analyze companies based on their strategic threats, goals, and KPIs to provide highly tailored, actionable AI project recommendations. " +
	"You are conservative with financial estimates and always state the assumptions behind them. " +
	"Always respond with valid, well-structured JSON."

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func numberedList(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s", i+1, item)
	}
	return b.String()
}

func bulletList(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
	return b.String()
}

// buildUserPrompt renders the full assessment context plus the task and
// output schema. When research is non-nil its findings are embedded as
// grounding context for the recommendations.
func buildUserPrompt(in generation.Input, research *generation.ResearchResult) string {
	var b strings.Builder

	b.WriteString("You are an AI business consultant specializing in AI transformation for mid-size companies.\n\n")

	b.WriteString("═══════════════════════════════════════════════\n")
	b.WriteString("COMPANY PROFILE\n")
	b.WriteString("═══════════════════════════════════════════════\n")
	fmt.Fprintf(&b, "Company Name: %s\n", in.CompanyName)
	fmt.Fprintf(&b, "Industry: %s\n", in.Industry)
	fmt.Fprintf(&b, "Country: %s\n", orDefault(in.Country, "Not specified"))
	fmt.Fprintf(&b, "Company Size: %s employees\n", in.CompanySize)
	fmt.Fprintf(&b, "Contact Role: %s\n", orDefault(in.Role, "Not specified"))
	fmt.Fprintf(&b, "Website: %s\n\n", orDefault(in.Website, "Not provided"))

	b.WriteString("═══════════════════════════════════════════════\n")
	b.WriteString("STRATEGIC PROBLEMS & THREATS\n")
	b.WriteString("═══════════════════════════════════════════════\n")
	b.WriteString("Strategic Threats Identified:\n")
	b.WriteString(numberedList(in.StrategicThreats, "Not specified"))
	b.WriteString("\n\nBiggest Business Problems:\n")
	b.WriteString(in.CurrentChallenges)
	b.WriteString("\n\n")

	b.WriteString("═══════════════════════════════════════════════\n")
	b.WriteString("GOALS & PRIORITIES\n")
	b.WriteString("═══════════════════════════════════════════════\n")
	fmt.Fprintf(&b, "Primary Goal with AI: %s\n", orDefault(in.PrimaryGoal, "Not specified"))
	fmt.Fprintf(&b, "Top KPI to Move: %s\n", orDefault(in.TopKPI, "Not specified"))
	fmt.Fprintf(&b, "Urgency for Results: %s\n\n", orDefault(in.Urgency, "Not specified"))
	b.WriteString("What They Want to Achieve with AI:\n")
	b.WriteString(in.Goals)
	b.WriteString("\n\n")

	if research != nil {
		b.WriteString("═══════════════════════════════════════════════\n")
		b.WriteString("MARKET RESEARCH CONTEXT (use this to ground your recommendations)\n")
		b.WriteString("═══════════════════════════════════════════════\n")
		fmt.Fprintf(&b, "Industry Insights:\n%s\n\n", research.IndustryInsights)
		fmt.Fprintf(&b, "Competitor Analysis:\n%s\n\n", research.CompetitorAnalysis)
		fmt.Fprintf(&b, "Market Trends:\n%s\n\n", research.MarketTrends)
		b.WriteString("Key Opportunities:\n")
		b.WriteString(bulletList(research.KeyOpportunities, "None identified"))
		b.WriteString("\n\nSuccess Cases:\n")
		b.WriteString(bulletList(research.SuccessCases, "None identified"))
		b.WriteString("\n\nBenchmarks:\n")
		fmt.Fprintf(&b, "- Typical ROI: %s\n", research.BenchmarkData.TypicalROI)
		fmt.Fprintf(&b, "- Implementation Costs: %s\n", research.BenchmarkData.ImplementationCosts)
		fmt.Fprintf(&b, "- Time to Value: %s\n", research.BenchmarkData.TimeToValue)
		b.WriteString("\nGround every ROI figure and cost estimate in the benchmarks above when possible.\n\n")
	}

	b.WriteString(taskSection)
	return b.String()
}

const taskSection = `═══════════════════════════════════════════════
YOUR TASK
═══════════════════════════════════════════════

Analyze this company's complete profile, strategic threats, and goals to provide:

1. **Top 3 AI Project Recommendations** (prioritized by ROI and feasibility)

   CRITICAL REQUIREMENTS for each project:
   - MUST directly address at least one of their Strategic Threats
   - MUST align with their Primary Goal with AI
   - MUST impact their Top KPI
   - MUST be achievable within their Urgency timeframe
   - MUST be viable for their industry, company size, and country context

   For EACH project, provide:
   - **Title**: Concise, business-focused name (e.g., "AI-Powered Customer Retention System")
   - **Description**: 2-3 sentences explaining:
     * What the solution is
     * Which specific strategic threat(s) it addresses
     * How it moves their Top KPI
   - **Estimated ROI**: CONSERVATIVE and realistic. Prefer 30-50% improvement claims over inflated ones, and state a timeframe of 6-18 months.
     * Example: "30% reduction in customer churn over 12 months"
     * Must be realistic for their industry and company size
   - **Total Cost**: Estimated implementation cost range (e.g., "$40K-$80K")
   - **Time to Implement**: Must align with their urgency (e.g., "6-8 weeks" if urgency is 30d)
   - **Priority**: High/Medium/Low (based on ROI, urgency, and strategic threat severity)
   - **Benefits**: Array of 3-4 SPECIFIC benefits (not generic)
     * Each benefit should be measurable and relevant to their KPI
   - **Assumptions**: Array of 2-3 assumptions behind the ROI estimate
   - **Risks**: Array of 2-3 implementation risks to watch
   - **Timeline**: A SPECIFIC 30-60-90 day implementation plan FOR THIS PROJECT:
     * days30: 3-4 concrete actions for the first 30 days
     * days60: 3-4 concrete actions for days 31-60
     * days90: 3-4 concrete actions for days 61-90

2. **Executive Summary** (2-3 paragraphs)
   - Acknowledge their specific strategic threats
   - Explain why these 3 projects are the best fit for their situation
   - Reference their Primary Goal, Top KPI, and Urgency

IMPORTANT:
- Each project must have its OWN timeline specific to implementing THAT project
- Projects must be prioritized by their ability to address the Strategic Threats
- All recommendations must be tailored to their industry, size, and country
- ROI figures must be conservative; assumptions and risks are required as credibility checks

Return the response in valid JSON format with this exact structure:
{
  "topProjects": [
    {
      "title": "Project Name",
      "description": "Detailed description of the project",
      "estimatedROI": "30% cost reduction over 12 months",
      "totalCost": "$40K-$80K",
      "timeToImplement": "3-6 months",
      "priority": "High",
      "benefits": ["Benefit 1", "Benefit 2", "Benefit 3"],
      "assumptions": ["Assumption 1", "Assumption 2"],
      "risks": ["Risk 1", "Risk 2"],
      "timeline": {
        "days30": ["Specific action 1 for THIS project", "Specific action 2 for THIS project"],
        "days60": ["Specific action 1 for THIS project", "Specific action 2 for THIS project"],
        "days90": ["Specific action 1 for THIS project", "Specific action 2 for THIS project"]
      }
    }
  ],
  "actionPlan": {
    "days30": ["Overall action 1", "Overall action 2"],
    "days60": ["Overall action 1", "Overall action 2"],
    "days90": ["Overall action 1", "Overall action 2"]
  },
  "executiveSummary": "string"
}`
