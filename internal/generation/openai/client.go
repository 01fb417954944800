package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"assessment-backend/internal/generation"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Client generates assessments with a single OpenAI Chat Completions call.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    *float32       `json:"temperature,omitempty"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate runs the direct single-call strategy.
func (c *Client) Generate(ctx context.Context, in generation.Input) (*generation.Result, error) {
	return c.generate(ctx, in, nil)
}

// GenerateWithResearch runs the same call with a research bundle embedded in
// the prompt. Used as phase two of the research strategy.
func (c *Client) GenerateWithResearch(ctx context.Context, in generation.Input, research *generation.ResearchResult) (*generation.Result, error) {
	return c.generate(ctx, in, research)
}

func (c *Client) generate(ctx context.Context, in generation.Input, research *generation.ResearchResult) (*generation.Result, error) {
	const op = "openai.generate"

	temp := float32(0.7)
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(in, research)},
		},
		Temperature: &temp,
		MaxTokens:   3000,
		ResponseFormat: responseFormat{
			Type: "json_object",
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &generation.Error{Code: generation.CodeBackend, Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, &generation.Error{Code: generation.CodeBackend, Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
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

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &generation.Error{Code: generation.CodeBackend, Op: op, Err: fmt.Errorf("response parse: %w", err)}
	}
	if parsed.Error != nil {
		return nil, &generation.Error{Code: generation.CodeBackend, Op: op,
			Err: fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)}
	}
	if len(parsed.Choices) == 0 {
		return nil, &generation.Error{Code: generation.CodeBackend, Op: op, Err: fmt.Errorf("response missing choices")}
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return nil, &generation.Error{Code: generation.CodeBackend, Op: op, Err: fmt.Errorf("response empty content")}
	}

	// A malformed or empty recommendation set is a hard error here. There is
	// no fallback for the direct strategy.
	var result generation.Result
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, &generation.Error{Code: generation.CodeSchema, Op: op, Err: err}
	}
	if len(result.TopProjects) == 0 {
		return nil, &generation.Error{Code: generation.CodeSchema, Op: op, Err: fmt.Errorf("no projects in response")}
	}
	return &result, nil
}

var _ generation.Provider = (*Client)(nil)
