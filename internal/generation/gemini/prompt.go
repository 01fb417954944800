package gemini

import (
	"fmt"
	"strings"

	"assessment-backend/internal/generation"
)

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func dashList(items []string, empty string) string {
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

// buildResearchPrompt renders the deep-research task. The prompt asks for a
// JSON bundle matching generation.ResearchResult.
func buildResearchPrompt(in generation.Input) string {
	var b strings.Builder

	b.WriteString("You are an expert Market Research Analyst conducting DEEP WEB RESEARCH for an AI transformation consulting project.\n\n")

	b.WriteString("# COMPANY PROFILE\n")
	fmt.Fprintf(&b, "- Company: %s\n", in.CompanyName)
	fmt.Fprintf(&b, "- Website: %s\n", orDefault(in.Website, "Not provided"))
	fmt.Fprintf(&b, "- Industry: %s\n", in.Industry)
	fmt.Fprintf(&b, "- Country: %s\n", orDefault(in.Country, "Not specified"))
	fmt.Fprintf(&b, "- Company Size: %s employees\n\n", in.CompanySize)

	b.WriteString("# STRATEGIC CONTEXT\n")
	b.WriteString("Strategic Threats:\n")
	b.WriteString(dashList(in.StrategicThreats, "No specific threats mentioned"))
	b.WriteString("\n\nCurrent Challenges:\n")
	b.WriteString(in.CurrentChallenges)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Primary Goal: %s\n", orDefault(in.PrimaryGoal, "Not specified"))
	fmt.Fprintf(&b, "Top KPI: %s\n", orDefault(in.TopKPI, "Not specified"))
	fmt.Fprintf(&b, "Goals: %s\n\n", in.Goals)

	b.WriteString("# CURRENT AI MATURITY\n")
	fmt.Fprintf(&b, "- Current AI Usage: %s\n", orDefault(in.CurrentAIUsage, "None"))
	b.WriteString("- AI Capabilities:\n")
	b.WriteString(dashList(in.AICapabilities, "No AI capabilities currently in use"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "- Data Quality: %s\n", orDefault(in.DataQuality, "Unknown"))
	fmt.Fprintf(&b, "- AI Talent: %s\n", orDefault(in.AITalent, "Unknown"))
	fmt.Fprintf(&b, "- AI Budget: %s\n", orDefault(in.AIBudget, "Unknown"))
	fmt.Fprintf(&b, "- AI Strategy: %s\n\n", orDefault(in.AIStrategy, "Unknown"))

	country := orDefault(in.Country, "global markets")
	fmt.Fprintf(&b, researchTask, in.Industry, country, in.Industry, in.Industry,
		in.CompanySize, in.Industry, in.Industry, in.CompanySize,
		in.Industry, in.Industry, in.Industry, in.CompanySize)
	return b.String()
}

const researchTask = `---

# YOUR TASK: DEEP WEB RESEARCH

You are conducting research that will be used by an AI strategist to create specific project recommendations. Focus on gathering REAL, CURRENT DATA from the web.

## RESEARCH AREAS:

### 1. INDUSTRY ANALYSIS
- Current state of the %s industry in %s
- Major trends, disruptions, and challenges
- How leading companies are responding to these challenges
- Industry growth metrics and forecasts
- Regulatory environment and compliance requirements

### 2. AI ADOPTION IN THE INDUSTRY
- How %s companies are currently using AI
- Specific AI use cases that are delivering results
- Success stories with concrete ROI data
- Failed implementations and lessons learned
- Emerging AI technologies being adopted

### 3. COMPETITOR INTELLIGENCE
- Identify 3-5 leading companies in %s
- Their AI initiatives and public results
- Technologies and vendors they're using
- Investment amounts and timelines reported
- Competitive advantages gained through AI

### 4. MARKET BENCHMARKS
- Typical AI implementation costs for %s-employee companies in %s
- ROI ranges reported by similar companies
- Time-to-value expectations (months to see results)
- Success rates and common pitfalls
- Budget allocation recommendations

### 5. KEY OPPORTUNITIES
- Specific AI opportunities relevant to their challenges
- Technologies that address their strategic threats
- Quick wins vs long-term transformation plays
- Emerging opportunities they should consider

### 6. SUCCESS CASES
- 3-5 real case studies of AI implementations in %s
- Include company names, technologies used, costs, ROI
- Focus on companies of similar size (%s employees)

## CRITICAL REQUIREMENTS:
1. **SEARCH THE WEB**: Use your web search capabilities extensively
2. **BE SPECIFIC**: Name real companies, vendors, products, statistics
3. **CITE SOURCES**: When you find data, mention the source
4. **BE CURRENT**: Focus on recent information
5. **BE QUANTITATIVE**: Include numbers, percentages, dollar amounts

## OUTPUT FORMAT (JSON):

{
  "industryInsights": "3-4 paragraphs about the %s industry. Include current trends, challenges, growth metrics, and how AI is being adopted. Cite specific statistics and sources you find.",
  "competitorAnalysis": "2-3 paragraphs analyzing how competitors/leaders in %s are using AI. Name specific companies and their initiatives. Include reported results and ROI when available.",
  "marketTrends": "2-3 paragraphs about AI trends specifically relevant to %s companies of size %s. Include market growth data, investment trends, and emerging technologies.",
  "keyOpportunities": [
    "Specific AI opportunity 1 with brief explanation",
    "Specific AI opportunity 2 with brief explanation",
    "Specific AI opportunity 3 with brief explanation"
  ],
  "successCases": [
    "Company Name 1: Brief description of their AI implementation, technology used, and results",
    "Company Name 2: Brief description of their AI implementation, technology used, and results",
    "Company Name 3: Brief description of their AI implementation, technology used, and results"
  ],
  "benchmarkData": {
    "typicalROI": "ROI range found in research. Cite source.",
    "implementationCosts": "Cost ranges for AI projects in this industry/company size. Cite source.",
    "timeToValue": "Typical time to see results. Cite source."
  }
}

IMPORTANT: This research will be used by an AI strategist to create specific project recommendations. Your job is to provide rich, data-driven context. The more specific and quantitative your research, the better the final recommendations will be.

Use your web search extensively. Don't make assumptions - find real data. If you can't find specific data for this exact industry/size, find the closest comparable data and note that.`
