package assessments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"assessment-backend/internal/generation"
	"assessment-backend/internal/maturity"
	"assessment-backend/internal/shared/metrics"
	"assessment-backend/internal/shared/telemetry"
	"assessment-backend/internal/users"
)

// RecentWindow bounds how far back the post-submit poller looks for a fresh
// assessment.
const RecentWindow = 5 * time.Minute

// Service contains business logic for assessments.
type Service struct {
	Repo         Repo
	Users        *users.Service
	Provider     generation.Provider
	ProviderName string
}

// Create persists a new in-progress assessment and kicks off asynchronous
// generation. The webhook response does not wait for processing.
func (s *Service) Create(ctx context.Context, a Assessment) (Assessment, error) {
	if strings.TrimSpace(a.UserID) == "" {
		return Assessment{}, errors.New("userID is required")
	}
	a.ID = uuid.NewString()
	a.Status = StatusInProgress
	a.CreatedAt = time.Now().UTC()

	if err := s.Repo.Create(ctx, a); err != nil {
		return Assessment{}, err
	}

	go s.processAsync(backgroundWithRequestID(ctx), a.ID)

	return a, nil
}

// Get returns an assessment by ID.
func (s *Service) Get(ctx context.Context, assessmentID string) (Assessment, error) {
	if assessmentID == "" {
		return Assessment{}, errors.New("assessmentID is required")
	}
	return s.Repo.GetByID(ctx, assessmentID)
}

// FindLatestByEmail returns the newest assessment for a user, any age.
func (s *Service) FindLatestByEmail(ctx context.Context, email string) (Assessment, error) {
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return Assessment{}, err
	}
	return s.Repo.LatestByUser(ctx, user.ID)
}

// FindRecent returns the newest assessment created within RecentWindow,
// optionally scoped to an email. The poller uses this right after form
// submission, before it knows the assessment ID.
func (s *Service) FindRecent(ctx context.Context, email string) (Assessment, users.User, error) {
	since := time.Now().UTC().Add(-RecentWindow)

	if email != "" {
		user, err := s.Users.GetByEmail(ctx, email)
		if err != nil {
			return Assessment{}, users.User{}, err
		}
		a, err := s.Repo.LatestByUserSince(ctx, user.ID, since)
		if err != nil {
			return Assessment{}, users.User{}, err
		}
		return a, user, nil
	}

	a, err := s.Repo.LatestSince(ctx, since)
	if err != nil {
		return Assessment{}, users.User{}, err
	}
	user, err := s.Users.GetByID(ctx, a.UserID)
	if err != nil {
		return Assessment{}, users.User{}, err
	}
	return a, user, nil
}

// Dashboard returns a user and their assessments newest-first.
func (s *Service) Dashboard(ctx context.Context, email string) (users.User, []Assessment, error) {
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return users.User{}, nil, err
	}
	list, err := s.Repo.ListByUser(ctx, user.ID)
	if err != nil {
		return users.User{}, nil, err
	}
	return user, list, nil
}

// Maturity recomputes the full readiness breakdown from stored answers.
// The score is deterministic, so display pages recompute strengths and
// improvements instead of persisting them.
func Maturity(a Assessment) maturity.Result {
	return maturity.Calculate(maturity.Input{
		Industry:          a.Industry,
		CompanySize:       a.CompanySize,
		StrategicThreats:  a.StrategicThreats,
		CurrentChallenges: a.CurrentChallenges,
		PrimaryGoal:       a.PrimaryGoal,
		TopKPI:            a.TopKPI,
		Urgency:           a.Urgency,
		Goals:             a.Goals,
		CurrentAIUsage:    a.CurrentAIUsage,
		AICapabilities:    a.AICapabilities,
		DataQuality:       a.DataQuality,
		AITalent:          a.AITalent,
		AIBudget:          a.AIBudget,
		AIStrategy:        a.AIStrategy,
	})
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// generationInput maps a stored assessment to provider input, filling the
// placeholders generation prompts expect for missing answers.
func generationInput(a Assessment) generation.Input {
	return generation.Input{
		CompanyName:       orDefault(a.CompanyName, "Unknown Company"),
		Website:           a.Website,
		Industry:          orDefault(a.Industry, "General"),
		Country:           a.Country,
		CompanySize:       orDefault(a.CompanySize, "50"),
		Role:              a.Role,
		StrategicThreats:  a.StrategicThreats,
		CurrentChallenges: orDefault(a.CurrentChallenges, "Not specified"),
		PrimaryGoal:       a.PrimaryGoal,
		TopKPI:            a.TopKPI,
		Urgency:           a.Urgency,
		Goals:             orDefault(a.Goals, "Not specified"),
		CurrentAIUsage:    a.CurrentAIUsage,
		AICapabilities:    a.AICapabilities,
		DataQuality:       a.DataQuality,
		AITalent:          a.AITalent,
		AIBudget:          a.AIBudget,
		AIStrategy:        a.AIStrategy,
	}
}

func (s *Service) processAsync(ctx context.Context, assessmentID string) {
	defer func() {
		if r := recover(); r != nil {
			s.failAssessment(ctx, assessmentID, "", fmt.Errorf("panic: %v", r), nil)
		}
	}()
	startedAt := time.Now().UTC()

	a, err := s.Repo.GetByID(ctx, assessmentID)
	if err != nil {
		s.failAssessment(ctx, assessmentID, "", fmt.Errorf("assessment lookup: %w", err), &startedAt)
		return
	}
	if s.Provider == nil {
		s.failAssessment(ctx, assessmentID, a.UserID, errors.New("missing generation provider"), &startedAt)
		return
	}

	metrics.IncGenerationStarted()
	telemetry.Info("assessment.status", map[string]any{
		"request_id":    requestIDFromContext(ctx),
		"user_id":       a.UserID,
		"assessment_id": a.ID,
		"provider":      s.ProviderName,
		"status":        StatusInProgress,
	})

	// Maturity is deterministic and computed before any backend call, so a
	// generation failure never loses the score.
	maturityResult := Maturity(a)
	telemetry.Info("assessment.maturity", map[string]any{
		"request_id":    requestIDFromContext(ctx),
		"assessment_id": a.ID,
		"score":         maturityResult.Score,
		"level":         maturityResult.Level,
	})

	result, err := s.Provider.Generate(ctx, generationInput(a))
	if err != nil {
		s.failAssessment(ctx, assessmentID, a.UserID, fmt.Errorf("generate: %w", err), &startedAt)
		return
	}

	update := CompletionUpdate{
		TopProjects:   result.TopProjects,
		ROIEstimates:  roiEstimates(result.TopProjects),
		ActionPlan:    result.ActionPlan,
		CrewReport:    result.RawReport,
		MaturityScore: maturityResult.Score,
		MaturityLevel: maturityResult.Level,
	}
	if err := s.Repo.Complete(ctx, assessmentID, update); err != nil {
		s.failAssessment(ctx, assessmentID, a.UserID, fmt.Errorf("set assessment result failed: %w", err), &startedAt)
		return
	}

	completedAt := time.Now().UTC()
	metrics.IncGenerationCompleted()
	metrics.ObserveGenerationDurationMs(durationMs(&startedAt, &completedAt))
	telemetry.Info("assessment.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           a.UserID,
		"assessment_id":     a.ID,
		"provider":          s.ProviderName,
		"status":            StatusCompleted,
		"status_transition": "in_progress->completed",
		"projects":          len(result.TopProjects),
		"duration_ms":       durationMs(&startedAt, &completedAt),
	})
}

// roiEstimates extracts per-project ROI strings, filling empty slots with
// "N/A" so the display layer never deals with missing keys.
func roiEstimates(projects []generation.ProjectRecommendation) ROIEstimates {
	pick := func(i int) string {
		if i < len(projects) && strings.TrimSpace(projects[i].EstimatedROI) != "" {
			return projects[i].EstimatedROI
		}
		return "N/A"
	}
	return ROIEstimates{
		Project1: pick(0),
		Project2: pick(1),
		Project3: pick(2),
	}
}

func (s *Service) failAssessment(ctx context.Context, assessmentID, userID string, err error, startedAt *time.Time) {
	// The caller's context may already be canceled; the failure write must
	// still land.
	if updateErr := s.Repo.MarkFailed(context.Background(), assessmentID); updateErr != nil {
		telemetry.Error("assessment.fail_update", map[string]any{
			"assessment_id": assessmentID,
			"error":         updateErr.Error(),
			"original":      err.Error(),
		})
	}
	completedAt := time.Now().UTC()
	metrics.IncGenerationFailed()
	if startedAt != nil {
		metrics.ObserveGenerationDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Error("assessment.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           userID,
		"assessment_id":     assessmentID,
		"provider":          s.ProviderName,
		"status":            StatusFailed,
		"status_transition": "in_progress->failed",
		"error":             sanitizeError(err),
		"duration_ms":       durationMs(startedAt, &completedAt),
	})
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
