package app

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

// HealthService reports on the most recent lint run. It is fed by Record
// from the watch loop and read by the /health endpoint.
type HealthService struct {
	mu      sync.RWMutex
	last    *RunStats
	lastErr error
	lastAt  time.Time
}

func NewHealthService() *HealthService {
	return &HealthService{}
}

// Record stores the outcome of a run.
func (s *HealthService) Record(res *Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAt = time.Now().UTC()
	s.lastErr = err
	if res != nil {
		stats := res.Stats
		s.last = &stats
	}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}

	switch {
	case s.lastErr != nil:
		status.Status = "degraded"
		status.Components["last_run"] = "failed: " + s.lastErr.Error()
	case s.last == nil:
		status.Components["last_run"] = "pending"
	default:
		status.Components["last_run"] = fmt.Sprintf("ok (%s, %d files, %s)", s.last.RunID, s.last.Files, s.last.Duration.Round(time.Millisecond))
		status.Components["last_run_at"] = s.lastAt.Format(time.RFC3339)
	}
	return status
}
