package crew

import (
	"regexp"
	"strings"

	"assessment-backend/internal/generation"
)

// The crew emits a markdown report with fixed section headings. Parsing is
// best-effort: a report that yields no projects falls back to a stub result
// pointing the reader at the full report text.
var (
	summaryRe  = regexp.MustCompile(`(?s)## Section 1: Executive Summary\n\n(.*?)\n\n---`)
	projectsRe = regexp.MustCompile(`(?s)## Section 2: Top 3 AI Opportunities\n\n(.*?)\n\n---\n\n## Section 3`)
	splitRe    = regexp.MustCompile(`###\sProject\s#\d+:`)

	titleRe    = regexp.MustCompile(`^(.*?)\s—\s\[(.*?)\]`)
	descRe     = regexp.MustCompile(`(?s)\n\n(.*?)\n\n\*\*Key Benefits`)
	roiRe      = regexp.MustCompile(`\*\*Expected ROI:\*\*\s(.*?)\n`)
	timeRe     = regexp.MustCompile(`\*\*Implementation Timeframe:\*\*\s(.*?)\n`)
	benefitsRe = regexp.MustCompile(`(?s)\*\*Key Benefits:\*\*\n(.*?)\n\n\*\*Expected ROI`)

	roadmapRe = regexp.MustCompile(`(?s)## Section 3: Implementation Roadmap\n\n(.*?)\n\n---\n\n## Section 4`)
	phase1Re  = regexp.MustCompile(`(?is)\*\*Phase 1.*?days\s1-30.*?\*Milestone:\s(.*?)\*`)
	phase2Re  = regexp.MustCompile(`(?is)\*\*Phase 2.*?days\s31-60.*?\*Milestone:\s(.*?)\*`)
	phase3Re  = regexp.MustCompile(`(?is)\*\*Phase 3.*?days\s61-90.*?\*Milestone:\s(.*?)\*`)
)

// ParseReport extracts the structured result from a crew markdown report.
// The full report text is preserved in RawReport.
func ParseReport(output string) *generation.Result {
	summary := "Summary not found"
	if m := summaryRe.FindStringSubmatch(output); m != nil {
		summary = strings.TrimSpace(m[1])
	}

	var projects []generation.ProjectRecommendation
	if m := projectsRe.FindStringSubmatch(output); m != nil {
		for _, block := range splitRe.Split(m[1], -1) {
			if strings.TrimSpace(block) == "" {
				continue
			}
			if p, ok := parseProject(block); ok {
				projects = append(projects, p)
			}
		}
	}

	plan := generation.ActionPlan{
		Days30: []string{"Project kickoff and initial setup"},
		Days60: []string{"Core implementation and testing"},
		Days90: []string{"Full deployment and optimization"},
	}
	if m := roadmapRe.FindStringSubmatch(output); m != nil {
		roadmap := m[1]
		if p := phase1Re.FindStringSubmatch(roadmap); p != nil {
			plan.Days30 = []string{strings.TrimSpace(p[1])}
		}
		if p := phase2Re.FindStringSubmatch(roadmap); p != nil {
			plan.Days60 = []string{strings.TrimSpace(p[1])}
		}
		if p := phase3Re.FindStringSubmatch(roadmap); p != nil {
			plan.Days90 = []string{strings.TrimSpace(p[1])}
		}
	}

	if len(projects) == 0 {
		return fallbackResult(output)
	}

	return &generation.Result{
		TopProjects:      projects,
		ActionPlan:       plan,
		ExecutiveSummary: summary,
		RawReport:        output,
	}
}

func parseProject(block string) (generation.ProjectRecommendation, bool) {
	title := titleRe.FindStringSubmatch(block)
	if title == nil {
		return generation.ProjectRecommendation{}, false
	}

	p := generation.ProjectRecommendation{
		Title:           strings.TrimSpace(title[1]),
		Priority:        strings.TrimSpace(title[2]),
		EstimatedROI:    "High impact",
		TimeToImplement: "90 days",
	}
	if m := descRe.FindStringSubmatch(block); m != nil {
		p.Description = strings.TrimSpace(m[1])
	}
	if m := roiRe.FindStringSubmatch(block); m != nil {
		p.EstimatedROI = strings.TrimSpace(m[1])
	}
	if m := timeRe.FindStringSubmatch(block); m != nil {
		p.TimeToImplement = strings.TrimSpace(m[1])
	}
	if m := benefitsRe.FindStringSubmatch(block); m != nil {
		for _, line := range strings.Split(m[1], "\n") {
			line = strings.TrimSpace(line)
			if !strings.HasPrefix(line, "-") {
				continue
			}
			if benefit := strings.TrimSpace(strings.TrimPrefix(line, "-")); benefit != "" {
				p.Benefits = append(p.Benefits, benefit)
			}
		}
	}
	return p, true
}

// fallbackResult is returned when the report does not match the expected
// layout at all. The caller still stores the raw report for display.
func fallbackResult(output string) *generation.Result {
	return &generation.Result{
		TopProjects: []generation.ProjectRecommendation{
			{
				Title:           "AI Project 1",
				Description:     "See full report for details",
				EstimatedROI:    "High impact",
				TimeToImplement: "90 days",
				Priority:        "High",
				Benefits:        []string{"Detailed analysis available in full report"},
			},
		},
		ActionPlan: generation.ActionPlan{
			Days30: []string{"See full report for detailed roadmap"},
			Days60: []string{"Implementation phases defined in report"},
			Days90: []string{"Full deployment plan in report"},
		},
		ExecutiveSummary: "Full analysis complete. See detailed report for comprehensive recommendations.",
		RawReport:        output,
	}
}
