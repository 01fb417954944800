package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"assessment-backend/internal/generation"
)

const apiBase = "https://generativelanguage.googleapis.com/v1beta"

// Client conducts market research with Gemini's generateContent API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new Gemini research client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = "gemini-1.5-pro"
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: apiBase,
		httpClient: &http.Client{
			Timeout: 180 * time.Second,
		},
	}, nil
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Research runs the deep-research prompt and parses the JSON bundle from the
// model output. Model replies may wrap the JSON in prose, so the outermost
// brace pair is extracted before parsing.
func (c *Client) Research(ctx context.Context, in generation.Input) (*generation.ResearchResult, error) {
	const op = "gemini.research"

	reqBody := generateRequest{
		Contents: []content{
			{Parts: []part{{Text: buildResearchPrompt(in)}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 8192,
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &generation.Error{Code: generation.CodeBackend, Op: op, Err: err}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &generation.Error{Code: generation.CodeBackend, Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, &generation.Error{Code: generation.CodeTimeout, Op: op, Err: err}
		}
		return nil, &generation.Error{Code: generation.CodeBackend, Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &generation.Error{Code: generation.CodeBackend, Op: op, Err: err}
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &generation.Error{Code: generation.CodeBackend, Op: op, Err: fmt.Errorf("response parse: %w", err)}
	}
	if parsed.Error != nil {
		return nil, &generation.Error{Code: generation.CodeBackend, Op: op,
			Err: fmt.Errorf("gemini error %d: %s (%s)", parsed.Error.Code, parsed.Error.Message, parsed.Error.Status)}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, &generation.Error{Code: generation.CodeBackend, Op: op, Err: fmt.Errorf("response missing candidates")}
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	jsonText := extractJSON(text)
	if jsonText == "" {
		return nil, &generation.Error{Code: generation.CodeSchema, Op: op, Err: fmt.Errorf("no JSON object in response")}
	}

	var research generation.ResearchResult
	if err := json.Unmarshal([]byte(jsonText), &research); err != nil {
		return nil, &generation.Error{Code: generation.CodeSchema, Op: op, Err: err}
	}
	return &research, nil
}

// extractJSON returns the outermost brace-delimited region of text,
// or "" when no braces are present.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return ""
	}
	return text[start : end+1]
}
