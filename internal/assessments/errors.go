package assessments

import "errors"

var ErrNotFound = errors.New("assessment not found")

const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)
