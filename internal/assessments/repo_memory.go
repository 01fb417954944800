package assessments

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	items map[string]Assessment
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{items: make(map[string]Assessment)}
}

func (r *MemoryRepo) Create(ctx context.Context, a Assessment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	r.items[a.ID] = a
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, assessmentID string) (Assessment, error) {
	if err := ctx.Err(); err != nil {
		return Assessment{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[assessmentID]
	if !ok {
		return Assessment{}, ErrNotFound
	}
	return a, nil
}

func (r *MemoryRepo) Complete(ctx context.Context, assessmentID string, update CompletionUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[assessmentID]
	if !ok || a.Status != StatusInProgress {
		return ErrNotFound
	}
	a.TopProjects = update.TopProjects
	roi := update.ROIEstimates
	a.ROIEstimates = &roi
	plan := update.ActionPlan
	a.ActionPlan = &plan
	a.CrewReport = update.CrewReport
	score := update.MaturityScore
	a.MaturityScore = &score
	a.MaturityLevel = update.MaturityLevel
	a.Status = StatusCompleted
	r.items[assessmentID] = a
	return nil
}

func (r *MemoryRepo) MarkFailed(ctx context.Context, assessmentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[assessmentID]
	if !ok || a.Status != StatusInProgress {
		return ErrNotFound
	}
	a.Status = StatusFailed
	r.items[assessmentID] = a
	return nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Assessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Assessment
	for _, a := range r.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) LatestByUser(ctx context.Context, userID string) (Assessment, error) {
	list, err := r.ListByUser(ctx, userID)
	if err != nil {
		return Assessment{}, err
	}
	if len(list) == 0 {
		return Assessment{}, ErrNotFound
	}
	return list[0], nil
}

func (r *MemoryRepo) LatestByUserSince(ctx context.Context, userID string, since time.Time) (Assessment, error) {
	list, err := r.ListByUser(ctx, userID)
	if err != nil {
		return Assessment{}, err
	}
	for _, a := range list {
		if !a.CreatedAt.Before(since) {
			return a, nil
		}
	}
	return Assessment{}, ErrNotFound
}

func (r *MemoryRepo) LatestSince(ctx context.Context, since time.Time) (Assessment, error) {
	if err := ctx.Err(); err != nil {
		return Assessment{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest Assessment
	found := false
	for _, a := range r.items {
		if a.CreatedAt.Before(since) {
			continue
		}
		if !found || a.CreatedAt.After(latest.CreatedAt) {
			latest = a
			found = true
		}
	}
	if !found {
		return Assessment{}, ErrNotFound
	}
	return latest, nil
}
