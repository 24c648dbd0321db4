package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// DefaultCheckTimeout bounds a single probe. An unreachable Redis or
// RabbitMQ otherwise holds `pulse health` until the dial gives up.
const DefaultCheckTimeout = 2 * time.Second

var statusRank = map[HealthStatus]int{
	HealthStatusHealthy:   0,
	HealthStatusDegraded:  1,
	HealthStatusUnhealthy: 2,
}

// Worse returns the more severe of a and b. Unknown statuses count as
// unhealthy.
func Worse(a, b HealthStatus) HealthStatus {
	ra, ok := statusRank[a]
	if !ok {
		ra = statusRank[HealthStatusUnhealthy]
	}
	rb, ok := statusRank[b]
	if !ok {
		rb = statusRank[HealthStatusUnhealthy]
	}
	if rb > ra {
		return b
	}
	return a
}

// HealthCheckResult is the result of a health check.
type HealthCheckResult struct {
	Status    HealthStatus   `json:"status"`
	Message   string         `json:"message,omitempty"`
	Duration  time.Duration  `json:"duration_ns"`
	Timestamp time.Time      `json:"timestamp"`
	Details   map[string]any `json:"details,omitempty"`
}

// HealthChecker probes one component.
type HealthChecker func(ctx context.Context) HealthCheckResult

// HealthRegistry runs the probes of every backend Pulse is wired to.
type HealthRegistry struct {
	mu       sync.RWMutex
	checkers map[string]HealthChecker
	timeout  time.Duration
}

// NewHealthRegistry creates a registry with DefaultCheckTimeout.
func NewHealthRegistry() *HealthRegistry {
	return &HealthRegistry{
		checkers: make(map[string]HealthChecker),
		timeout:  DefaultCheckTimeout,
	}
}

// WithTimeout sets the per-check timeout.
func (r *HealthRegistry) WithTimeout(timeout time.Duration) *HealthRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if timeout > 0 {
		r.timeout = timeout
	}
	return r
}

// Register adds or replaces the checker for a component.
func (r *HealthRegistry) Register(name string, checker HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[name] = checker
}

// Check runs every checker concurrently. A checker that panics or outlives
// the timeout is reported unhealthy.
func (r *HealthRegistry) Check(ctx context.Context) map[string]HealthCheckResult {
	r.mu.RLock()
	checkers := make(map[string]HealthChecker, len(r.checkers))
	for name, checker := range r.checkers {
		checkers[name] = checker
	}
	timeout := r.timeout
	r.mu.RUnlock()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]HealthCheckResult, len(checkers))
	)
	for name, checker := range checkers {
		wg.Go(func() {
			result := runCheck(ctx, checker, timeout)
			mu.Lock()
			results[name] = result
			mu.Unlock()
		})
	}
	wg.Wait()
	return results
}

func runCheck(ctx context.Context, checker HealthChecker, timeout time.Duration) HealthCheckResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	done := make(chan HealthCheckResult, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- HealthCheckResult{Status: HealthStatusUnhealthy, Message: fmt.Sprintf("check panicked: %v", p)}
			}
		}()
		done <- checker(ctx)
	}()

	var result HealthCheckResult
	select {
	case result = <-done:
	case <-ctx.Done():
		result = HealthCheckResult{Status: HealthStatusUnhealthy, Message: "check timed out after " + timeout.String()}
	}
	result.Duration = time.Since(start)
	result.Timestamp = time.Now()
	return result
}

// OverallHealth is the outcome of one run of every check.
type OverallHealth struct {
	Status    HealthStatus                 `json:"status"`
	Timestamp time.Time                    `json:"timestamp"`
	Checks    map[string]HealthCheckResult `json:"checks"`
}

// GetOverallHealth runs every check. The overall status is the worst status
// of the run, or healthy when nothing is registered.
func (r *HealthRegistry) GetOverallHealth(ctx context.Context) OverallHealth {
	checks := r.Check(ctx)
	status := HealthStatusHealthy
	for _, result := range checks {
		status = Worse(status, result.Status)
	}
	return OverallHealth{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    checks,
	}
}

// ToJSON serializes the overall health as indented JSON.
func (h OverallHealth) ToJSON() ([]byte, error) {
	return json.MarshalIndent(h, "", "  ")
}

// PingChecker reports failed as the given status and success as healthy.
// The database is critical; the cache and the broker only degrade Pulse.
func PingChecker(component string, failed HealthStatus, ping func(ctx context.Context) error) HealthChecker {
	return func(ctx context.Context) HealthCheckResult {
		if err := ping(ctx); err != nil {
			return HealthCheckResult{
				Status:  failed,
				Message: component + " connection failed: " + err.Error(),
			}
		}
		return HealthCheckResult{
			Status:  HealthStatusHealthy,
			Message: component + " connection healthy",
		}
	}
}

// StaticChecker reports a fixed status, used for components that run in
// process and need no probe.
func StaticChecker(status HealthStatus, message string) HealthChecker {
	return func(context.Context) HealthCheckResult {
		return HealthCheckResult{Status: status, Message: message}
	}
}
