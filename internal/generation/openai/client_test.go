package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"assessment-backend/internal/generation"
)

func testInput() generation.Input {
	return generation.Input{
		CompanyName:       "Acme Corp",
		Industry:          "Retail & E-commerce",
		CompanySize:       "120",
		StrategicThreats:  []string{"New entrants", "Margin pressure"},
		CurrentChallenges: "Manual order triage",
		PrimaryGoal:       "Reduce costs",
		TopKPI:            "Operating margin",
		Urgency:           "90d",
		Goals:             "Automate the back office",
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient("test-key", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.baseURL = srv.URL
	return client, srv
}

func chatReply(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return string(body)
}

func TestGenerateParsesResult(t *testing.T) {
	resultJSON := `{
		"topProjects": [{
			"title": "AI Order Triage",
			"description": "Automates order routing.",
			"estimatedROI": "30% cost reduction over 12 months",
			"totalCost": "$40K-$80K",
			"timeToImplement": "8 weeks",
			"priority": "High",
			"benefits": ["Faster routing"],
			"assumptions": ["Order data is accessible"],
			"risks": ["Adoption lag"],
			"timeline": {"days30": ["Audit flows"], "days60": ["Pilot"], "days90": ["Roll out"]}
		}],
		"actionPlan": {"days30": ["Kickoff"], "days60": ["Build"], "days90": ["Deploy"]},
		"executiveSummary": "Summary."
	}`

	var gotReq chatRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing auth header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(chatReply(resultJSON)))
	})

	res, err := client.Generate(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.TopProjects) != 1 || res.TopProjects[0].Title != "AI Order Triage" {
		t.Fatalf("unexpected projects: %+v", res.TopProjects)
	}
	if res.TopProjects[0].TotalCost != "$40K-$80K" {
		t.Fatalf("totalCost not parsed: %+v", res.TopProjects[0])
	}
	if res.TopProjects[0].Timeline == nil || len(res.TopProjects[0].Timeline.Days30) != 1 {
		t.Fatalf("timeline not parsed: %+v", res.TopProjects[0].Timeline)
	}
	if res.ExecutiveSummary != "Summary." {
		t.Fatalf("unexpected summary: %q", res.ExecutiveSummary)
	}

	if gotReq.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %q", gotReq.Model)
	}
	if gotReq.ResponseFormat.Type != "json_object" {
		t.Fatalf("expected json_object response format")
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", gotReq.Messages)
	}
	prompt := gotReq.Messages[1].Content
	for _, want := range []string{"Acme Corp", "1. New entrants", "Top KPI to Move: Operating margin", "assumptions", "conservative"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestGenerateWithResearchEmbedsContext(t *testing.T) {
	var gotReq chatRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(chatReply(`{"topProjects":[{"title":"P1","description":"d","estimatedROI":"r","timeToImplement":"t","priority":"High"}],"actionPlan":{"days30":[],"days60":[],"days90":[]},"executiveSummary":"s"}`)))
	})

	research := &generation.ResearchResult{
		IndustryInsights: "Retail AI adoption is accelerating.",
		KeyOpportunities: []string{"Demand forecasting"},
	}
	research.BenchmarkData.TypicalROI = "15-30% cost reduction"

	if _, err := client.GenerateWithResearch(context.Background(), testInput(), research); err != nil {
		t.Fatalf("GenerateWithResearch: %v", err)
	}
	prompt := gotReq.Messages[1].Content
	if !strings.Contains(prompt, "MARKET RESEARCH CONTEXT") {
		t.Fatalf("prompt missing research section")
	}
	if !strings.Contains(prompt, "Retail AI adoption is accelerating.") {
		t.Fatalf("prompt missing research insights")
	}
	if !strings.Contains(prompt, "15-30% cost reduction") {
		t.Fatalf("prompt missing benchmark data")
	}
}

func TestGenerateInvalidJSONIsSchemaError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply("here are your projects: ...")))
	})

	_, err := client.Generate(context.Background(), testInput())
	var genErr *generation.Error
	if !errors.As(err, &genErr) || genErr.Code != generation.CodeSchema {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestGenerateEmptyProjectsIsSchemaError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply(`{"topProjects":[],"actionPlan":{"days30":[],"days60":[],"days90":[]},"executiveSummary":"s"}`)))
	})

	_, err := client.Generate(context.Background(), testInput())
	var genErr *generation.Error
	if !errors.As(err, &genErr) || genErr.Code != generation.CodeSchema {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestGenerateBackendError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	})

	_, err := client.Generate(context.Background(), testInput())
	var genErr *generation.Error
	if !errors.As(err, &genErr) || genErr.Code != generation.CodeBackend {
		t.Fatalf("expected backend error, got %v", err)
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected backend message, got %v", err)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini"); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient("key", ""); err == nil {
		t.Fatal("expected error for missing model")
	}
}
