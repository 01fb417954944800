package crew

import (
	"strings"
	"testing"
)

const sampleReport = `# AI Assessment Report

## Section 1: Executive Summary

Acme Corp faces margin pressure from digital-native entrants. The three
initiatives below target their operating margin KPI directly.

---

## Section 2: Top 3 AI Opportunities

### Project #1: AI Order Triage — [High]

Automates inbound order routing using a classification model, removing the
manual triage bottleneck that drives fulfillment delays.

**Key Benefits:**
- 40% faster order processing
- Lower error rate in routing
- Frees two FTEs for exception handling

**Expected ROI:** 30% cost reduction over 12 months

**Implementation Timeframe:** 8-10 weeks

### Project #2: Demand Forecasting — [Medium]

Predicts SKU-level demand to reduce stockouts and overstock.

**Key Benefits:**
- Fewer stockouts
- Lower carrying costs

**Expected ROI:** 15% inventory cost reduction

**Implementation Timeframe:** 12 weeks

---

## Section 3: Implementation Roadmap

**Phase 1 (days 1-30):** Data audit and tooling selection.
*Milestone: Data pipeline validated*

**Phase 2 (days 31-60):** Model build and pilot.
*Milestone: Pilot live on one product line*

**Phase 3 (days 61-90):** Rollout and monitoring.
*Milestone: Full production rollout*

---

## Section 4: Appendix

Methodology notes.
`

func TestParseReport(t *testing.T) {
	res := ParseReport(sampleReport)

	if !strings.HasPrefix(res.ExecutiveSummary, "Acme Corp faces margin pressure") {
		t.Fatalf("unexpected summary: %q", res.ExecutiveSummary)
	}

	if len(res.TopProjects) != 2 {
		t.Fatalf("expected 2 projects, got %d: %+v", len(res.TopProjects), res.TopProjects)
	}
	p1 := res.TopProjects[0]
	if p1.Title != "AI Order Triage" {
		t.Fatalf("unexpected title: %q", p1.Title)
	}
	if p1.Priority != "High" {
		t.Fatalf("unexpected priority: %q", p1.Priority)
	}
	if !strings.HasPrefix(p1.Description, "Automates inbound order routing") {
		t.Fatalf("unexpected description: %q", p1.Description)
	}
	if p1.EstimatedROI != "30% cost reduction over 12 months" {
		t.Fatalf("unexpected ROI: %q", p1.EstimatedROI)
	}
	if p1.TimeToImplement != "8-10 weeks" {
		t.Fatalf("unexpected timeframe: %q", p1.TimeToImplement)
	}
	if len(p1.Benefits) != 3 || p1.Benefits[0] != "40% faster order processing" {
		t.Fatalf("unexpected benefits: %v", p1.Benefits)
	}

	if res.TopProjects[1].Priority != "Medium" {
		t.Fatalf("unexpected second priority: %q", res.TopProjects[1].Priority)
	}

	if len(res.ActionPlan.Days30) != 1 || res.ActionPlan.Days30[0] != "Data pipeline validated" {
		t.Fatalf("unexpected days30: %v", res.ActionPlan.Days30)
	}
	if res.ActionPlan.Days60[0] != "Pilot live on one product line" {
		t.Fatalf("unexpected days60: %v", res.ActionPlan.Days60)
	}
	if res.ActionPlan.Days90[0] != "Full production rollout" {
		t.Fatalf("unexpected days90: %v", res.ActionPlan.Days90)
	}

	if res.RawReport != sampleReport {
		t.Fatal("raw report not preserved")
	}
}

func TestParseReportMissingFieldsGetDefaults(t *testing.T) {
	report := `## Section 1: Executive Summary

Short summary.

---

## Section 2: Top 3 AI Opportunities

### Project #1: Minimal Project — [Low]

Bare block with no benefit or ROI markers.

---

## Section 3: Implementation Roadmap

No phases here.

---

## Section 4: Appendix
`
	res := ParseReport(report)
	if len(res.TopProjects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(res.TopProjects))
	}
	p := res.TopProjects[0]
	if p.EstimatedROI != "High impact" || p.TimeToImplement != "90 days" {
		t.Fatalf("expected defaults, got %+v", p)
	}
	if res.ActionPlan.Days30[0] != "Project kickoff and initial setup" {
		t.Fatalf("expected default roadmap, got %v", res.ActionPlan.Days30)
	}
}

func TestParseReportUnstructuredFallsBack(t *testing.T) {
	res := ParseReport("The crew emitted freeform logs with no recognizable sections.")

	if len(res.TopProjects) != 1 {
		t.Fatalf("expected single fallback project, got %d", len(res.TopProjects))
	}
	if res.TopProjects[0].Title != "AI Project 1" {
		t.Fatalf("unexpected fallback title: %q", res.TopProjects[0].Title)
	}
	if res.ExecutiveSummary != "Full analysis complete. See detailed report for comprehensive recommendations." {
		t.Fatalf("unexpected fallback summary: %q", res.ExecutiveSummary)
	}
	if res.RawReport == "" {
		t.Fatal("raw report should be preserved on fallback")
	}
}
