package crew

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"assessment-backend/internal/generation"
	"assessment-backend/internal/shared/telemetry"
)

const (
	defaultTimeout = 300 * time.Second
	maxOutputBytes = 10 * 1024 * 1024
)

// Provider runs the multi-agent crew as a Python subprocess and parses its
// markdown report.
type Provider struct {
	dir     string
	python  string
	timeout time.Duration
}

// NewProvider constructs the crew provider. dir is the crew project
// directory containing src/surfing_digital/main.py.
func NewProvider(dir string) (*Provider, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("CREWAI_DIR is required")
	}
	python := strings.TrimSpace(os.Getenv("CREWAI_PYTHON"))
	if python == "" {
		python = "python3"
	}
	return &Provider{
		dir:     dir,
		python:  python,
		timeout: defaultTimeout,
	}, nil
}

// crewPayload is the JSON argument handed to the crew entrypoint.
type crewPayload struct {
	CompanyName string `json:"companyName"`
	Website     string `json:"website,omitempty"`
	Industry    string `json:"industry"`
	Country     string `json:"country,omitempty"`
	CompanySize string `json:"companySize"`
	Role        string `json:"role,omitempty"`

	StrategicThreats  []string `json:"strategicThreats"`
	CurrentChallenges string   `json:"currentChallenges"`

	PrimaryGoal string `json:"primaryGoal,omitempty"`
	TopKPI      string `json:"topKPI,omitempty"`
	Urgency     string `json:"urgency,omitempty"`
	Goals       string `json:"goals"`

	CurrentAIUsage string   `json:"currentAIUsage,omitempty"`
	AICapabilities []string `json:"aiCapabilities"`
	DataQuality    string   `json:"dataQuality,omitempty"`
	AITalent       string   `json:"aiTalent,omitempty"`
	AIBudget       string   `json:"aiBudget,omitempty"`
	AIStrategy     string   `json:"aiStrategy,omitempty"`
}

var errOutputTooLarge = errors.New("crew output exceeds buffer limit")

// boundedBuffer fails the subprocess write once the cap is exceeded, which
// surfaces as a run error instead of unbounded memory growth.
type boundedBuffer struct {
	buf bytes.Buffer
	max int
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	if b.buf.Len()+len(p) > b.max {
		return 0, errOutputTooLarge
	}
	return b.buf.Write(p)
}

func (p *Provider) Generate(ctx context.Context, in generation.Input) (*generation.Result, error) {
	const op = "crew.generate"

	payload, err := json.Marshal(crewPayload{
		CompanyName:       in.CompanyName,
		Website:           in.Website,
		Industry:          in.Industry,
		Country:           in.Country,
		CompanySize:       in.CompanySize,
		Role:              in.Role,
		StrategicThreats:  emptyIfNil(in.StrategicThreats),
		CurrentChallenges: in.CurrentChallenges,
		PrimaryGoal:       in.PrimaryGoal,
		TopKPI:            in.TopKPI,
		Urgency:           in.Urgency,
		Goals:             in.Goals,
		CurrentAIUsage:    in.CurrentAIUsage,
		AICapabilities:    emptyIfNil(in.AICapabilities),
		DataQuality:       in.DataQuality,
		AITalent:          in.AITalent,
		AIBudget:          in.AIBudget,
		AIStrategy:        in.AIStrategy,
	})
	if err != nil {
		return nil, &generation.Error{Code: generation.CodeSubprocess, Op: op, Err: err}
	}

	runCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, p.python, "src/surfing_digital/main.py", string(payload))
	cmd.Dir = p.dir
	cmd.Env = append(os.Environ(), "PYTHONPATH=src")

	stdout := &boundedBuffer{max: maxOutputBytes}
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()

	if stderr.Len() > 0 {
		telemetry.Warn("crew.stderr", map[string]any{
			"bytes": stderr.Len(),
			"tail":  tail(stderr.String(), 512),
		})
	}

	if runErr != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return nil, &generation.Error{Code: generation.CodeTimeout, Op: op,
				Err: fmt.Errorf("crew run exceeded %s", p.timeout)}
		}
		if errors.Is(runErr, errOutputTooLarge) {
			return nil, &generation.Error{Code: generation.CodeSubprocess, Op: op, Err: errOutputTooLarge}
		}
		return nil, &generation.Error{Code: generation.CodeSubprocess, Op: op,
			Err: fmt.Errorf("crew run: %w: %s", runErr, tail(stderr.String(), 512))}
	}

	output := stdout.buf.String()
	if strings.TrimSpace(output) == "" {
		return nil, &generation.Error{Code: generation.CodeSubprocess, Op: op, Err: fmt.Errorf("crew produced no output")}
	}

	telemetry.Info("crew.complete", map[string]any{
		"duration_ms":  time.Since(start).Milliseconds(),
		"output_bytes": len(output),
	})

	return ParseReport(output), nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

var _ generation.Provider = (*Provider)(nil)
