package gemini

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
		StrategicThreats:  []string{"New entrants"},
		CurrentChallenges: "Manual order triage",
		Goals:             "Automate the back office",
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient("test-key", "gemini-1.5-pro")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.baseURL = srv.URL
	return client
}

func candidateReply(text string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	})
	return string(body)
}

const researchJSON = `{
	"industryInsights": "Retail is adopting AI fast.",
	"competitorAnalysis": "Leaders invest heavily.",
	"marketTrends": "Forecasting is the biggest trend.",
	"keyOpportunities": ["Demand forecasting", "Chat support"],
	"successCases": ["BigShop: 20% fewer stockouts"],
	"benchmarkData": {
		"typicalROI": "15-30% cost reduction",
		"implementationCosts": "$50K-$200K",
		"timeToValue": "3-6 months"
	}
}`

func TestResearchParsesBundle(t *testing.T) {
	var gotPath, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(candidateReply(researchJSON)))
	})

	res, err := client.Research(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Research: %v", err)
	}
	if res.IndustryInsights != "Retail is adopting AI fast." {
		t.Fatalf("unexpected insights: %q", res.IndustryInsights)
	}
	if len(res.KeyOpportunities) != 2 {
		t.Fatalf("unexpected opportunities: %v", res.KeyOpportunities)
	}
	if res.BenchmarkData.TimeToValue != "3-6 months" {
		t.Fatalf("unexpected benchmark: %+v", res.BenchmarkData)
	}
	if !strings.Contains(gotPath, "models/gemini-1.5-pro:generateContent") {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if !strings.Contains(gotQuery, "key=test-key") {
		t.Fatalf("expected api key in query, got %q", gotQuery)
	}
}

func TestResearchSalvagesWrappedJSON(t *testing.T) {
	wrapped := "Here is the research you asked for:\n\n" + researchJSON + "\n\nLet me know if you need more."
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateReply(wrapped)))
	})

	res, err := client.Research(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Research: %v", err)
	}
	if res.MarketTrends != "Forecasting is the biggest trend." {
		t.Fatalf("unexpected trends: %q", res.MarketTrends)
	}
}

func TestResearchNoJSONIsSchemaError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateReply("I could not complete the research.")))
	})

	_, err := client.Research(context.Background(), testInput())
	var genErr *generation.Error
	if !errors.As(err, &genErr) || genErr.Code != generation.CodeSchema {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestResearchBackendError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	})

	_, err := client.Research(context.Background(), testInput())
	var genErr *generation.Error
	if !errors.As(err, &genErr) || genErr.Code != generation.CodeBackend {
		t.Fatalf("expected backend error, got %v", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected backend message, got %v", err)
	}
}

func TestExtractJSON(t *testing.T) {
	if got := extractJSON("no braces here"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	if got := extractJSON(`prefix {"a":1} suffix`); got != `{"a":1}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}
