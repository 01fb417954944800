package assessments

import (
	"context"
	"errors"
	"testing"
	"time"

	"assessment-backend/internal/generation"
	"assessment-backend/internal/users"
)

type stubProvider struct {
	result   *generation.Result
	err      error
	gotInput generation.Input
	calls    int
	done     chan struct{}
}

func (s *stubProvider) Generate(ctx context.Context, in generation.Input) (*generation.Result, error) {
	s.calls++
	s.gotInput = in
	if s.done != nil {
		defer close(s.done)
	}
	return s.result, s.err
}

func generatedResult() *generation.Result {
	return &generation.Result{
		TopProjects: []generation.ProjectRecommendation{
			{Title: "P1", EstimatedROI: "30% over 12 months", Priority: "High"},
			{Title: "P2", EstimatedROI: "15% over 9 months", Priority: "Medium"},
		},
		ActionPlan:       generation.ActionPlan{Days30: []string{"Kickoff"}},
		ExecutiveSummary: "Summary",
		RawReport:        "full report",
	}
}

func seedAssessment(t *testing.T, repo Repo, a Assessment) Assessment {
	t.Helper()
	if a.ID == "" {
		a.ID = "a-1"
	}
	if a.UserID == "" {
		a.UserID = "u-1"
	}
	if a.Status == "" {
		a.Status = StatusInProgress
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("seed assessment: %v", err)
	}
	return a
}

func newTestService(provider generation.Provider) (*Service, *MemoryRepo, *users.Service) {
	repo := NewMemoryRepo()
	userSvc := users.NewService(users.NewMemoryRepo())
	svc := &Service{
		Repo:         repo,
		Users:        userSvc,
		Provider:     provider,
		ProviderName: "stub",
	}
	return svc, repo, userSvc
}

func TestProcessAsyncCompletes(t *testing.T) {
	provider := &stubProvider{result: generatedResult()}
	svc, repo, _ := newTestService(provider)

	a := seedAssessment(t, repo, Assessment{
		CurrentAIUsage: "1-2 systems in production",
		AICapabilities: []string{"Chatbots", "Forecasting"},
		DataQuality:    "Good - centralized",
	})

	svc.processAsync(context.Background(), a.ID)

	got, err := repo.GetByID(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q", got.Status)
	}
	if len(got.TopProjects) != 2 || got.TopProjects[0].Title != "P1" {
		t.Fatalf("unexpected projects: %+v", got.TopProjects)
	}
	if got.ROIEstimates == nil {
		t.Fatal("expected roi estimates")
	}
	if got.ROIEstimates.Project1 != "30% over 12 months" {
		t.Fatalf("unexpected roi project1: %q", got.ROIEstimates.Project1)
	}
	if got.ROIEstimates.Project3 != "N/A" {
		t.Fatalf("expected N/A fill for missing project, got %q", got.ROIEstimates.Project3)
	}
	if got.CrewReport != "full report" {
		t.Fatalf("expected raw report stored, got %q", got.CrewReport)
	}
	// 15 usage + 10 capabilities + 12 data quality.
	if got.MaturityScore == nil || *got.MaturityScore != 37 {
		t.Fatalf("unexpected maturity score: %v", got.MaturityScore)
	}
	if got.MaturityLevel != "Developing" {
		t.Fatalf("unexpected maturity level: %q", got.MaturityLevel)
	}
}

func TestProcessAsyncProviderFailure(t *testing.T) {
	provider := &stubProvider{err: &generation.Error{Code: generation.CodeBackend, Op: "stub", Err: errors.New("boom")}}
	svc, repo, _ := newTestService(provider)

	a := seedAssessment(t, repo, Assessment{})
	svc.processAsync(context.Background(), a.ID)

	got, err := repo.GetByID(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != StatusFailed {
		t.Fatalf("expected failed, got %q", got.Status)
	}
	if got.MaturityScore != nil {
		t.Fatalf("failed runs should not write partial results, got score %v", *got.MaturityScore)
	}
}

func TestProcessAsyncInputDefaults(t *testing.T) {
	provider := &stubProvider{result: generatedResult()}
	svc, repo, _ := newTestService(provider)

	a := seedAssessment(t, repo, Assessment{})
	svc.processAsync(context.Background(), a.ID)

	in := provider.gotInput
	if in.CompanyName != "Unknown Company" {
		t.Fatalf("unexpected company default: %q", in.CompanyName)
	}
	if in.Industry != "General" || in.CompanySize != "50" {
		t.Fatalf("unexpected defaults: %q %q", in.Industry, in.CompanySize)
	}
	if in.CurrentChallenges != "Not specified" || in.Goals != "Not specified" {
		t.Fatalf("unexpected text defaults: %q %q", in.CurrentChallenges, in.Goals)
	}
}

func TestProcessAsyncMissingProvider(t *testing.T) {
	svc, repo, _ := newTestService(nil)

	a := seedAssessment(t, repo, Assessment{})
	svc.processAsync(context.Background(), a.ID)

	got, _ := repo.GetByID(context.Background(), a.ID)
	if got.Status != StatusFailed {
		t.Fatalf("expected failed, got %q", got.Status)
	}
}

func TestCreateStartsProcessing(t *testing.T) {
	provider := &stubProvider{result: generatedResult(), done: make(chan struct{})}
	svc, repo, _ := newTestService(provider)

	created, err := svc.Create(context.Background(), Assessment{UserID: "u-1", CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.Status != StatusInProgress {
		t.Fatalf("unexpected created assessment: %+v", created)
	}

	select {
	case <-provider.done:
	case <-time.After(2 * time.Second):
		t.Fatal("provider was not invoked")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := repo.GetByID(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Status == StatusCompleted {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("assessment never completed, status %q", got.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestFindRecentByEmail(t *testing.T) {
	svc, repo, userSvc := newTestService(nil)

	user, err := userSvc.FindOrCreate(context.Background(), "ana@example.com", "Ana")
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}
	seedAssessment(t, repo, Assessment{ID: "fresh", UserID: user.ID, CreatedAt: time.Now().UTC()})
	seedAssessment(t, repo, Assessment{ID: "stale", UserID: user.ID, CreatedAt: time.Now().UTC().Add(-time.Hour)})

	a, gotUser, err := svc.FindRecent(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("FindRecent: %v", err)
	}
	if a.ID != "fresh" {
		t.Fatalf("expected fresh assessment, got %q", a.ID)
	}
	if gotUser.Email != "ana@example.com" {
		t.Fatalf("unexpected user: %+v", gotUser)
	}
}

func TestFindRecentIgnoresOldSubmissions(t *testing.T) {
	svc, repo, userSvc := newTestService(nil)

	user, _ := userSvc.FindOrCreate(context.Background(), "ana@example.com", "")
	seedAssessment(t, repo, Assessment{ID: "stale", UserID: user.ID, CreatedAt: time.Now().UTC().Add(-time.Hour)})

	if _, _, err := svc.FindRecent(context.Background(), "ana@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindRecentWithoutEmail(t *testing.T) {
	svc, repo, userSvc := newTestService(nil)

	user, _ := userSvc.FindOrCreate(context.Background(), "ana@example.com", "")
	seedAssessment(t, repo, Assessment{ID: "fresh", UserID: user.ID, CreatedAt: time.Now().UTC()})

	a, gotUser, err := svc.FindRecent(context.Background(), "")
	if err != nil {
		t.Fatalf("FindRecent: %v", err)
	}
	if a.ID != "fresh" || gotUser.Email != "ana@example.com" {
		t.Fatalf("unexpected result: %q %q", a.ID, gotUser.Email)
	}
}

func TestCompleteGuardsTerminalStates(t *testing.T) {
	repo := NewMemoryRepo()
	a := seedAssessment(t, repo, Assessment{})

	if err := repo.MarkFailed(context.Background(), a.ID); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	err := repo.Complete(context.Background(), a.ID, CompletionUpdate{MaturityLevel: "Beginner"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound completing failed assessment, got %v", err)
	}
	got, _ := repo.GetByID(context.Background(), a.ID)
	if got.Status != StatusFailed {
		t.Fatalf("terminal status must not change, got %q", got.Status)
	}
}

func TestRoiEstimatesFill(t *testing.T) {
	got := roiEstimates(nil)
	if got.Project1 != "N/A" || got.Project2 != "N/A" || got.Project3 != "N/A" {
		t.Fatalf("expected all N/A, got %+v", got)
	}

	got = roiEstimates([]generation.ProjectRecommendation{
		{EstimatedROI: "20%"},
		{EstimatedROI: ""},
	})
	if got.Project1 != "20%" || got.Project2 != "N/A" || got.Project3 != "N/A" {
		t.Fatalf("unexpected fill: %+v", got)
	}
}
