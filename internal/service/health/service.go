package health

import (
	"context"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Status represents the health status
type Status string

const (
	StatusOK        Status = "ok"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// TimestampLayout renders instants as UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// HealthResponse is the fixed liveness payload.
type HealthResponse struct {
	Status    Status `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// CheckResult represents the result of a readiness check
type CheckResult struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// ReadyResponse represents the readiness response
type ReadyResponse struct {
	Ready     bool                   `json:"ready"`
	Status    Status                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks"`
}

// Checker defines a readiness check function
type Checker func(ctx context.Context) CheckResult

// Service answers liveness and readiness probes.
type Service struct {
	service  string
	checkers map[string]Checker
	log      *zap.Logger
	mu       sync.RWMutex
	now      func() time.Time
}

func NewService(service string, log *zap.Logger) *Service {
	return &Service{
		service:  service,
		checkers: make(map[string]Checker),
		log:      log,
		now:      time.Now,
	}
}

// RegisterChecker adds a readiness check
func (s *Service) RegisterChecker(name string, checker Checker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkers[name] = checker
}

// Health never inspects dependencies.
func (s *Service) Health(ctx context.Context) *HealthResponse {
	return &HealthResponse{
		Status:    StatusOK,
		Service:   s.service,
		Timestamp: s.now().UTC().Format(TimestampLayout),
	}
}

// Ready runs every registered checker. A degraded check keeps the service
// ready; an unhealthy one does not.
func (s *Service) Ready(ctx context.Context) *ReadyResponse {
	s.mu.RLock()
	checkers := make(map[string]Checker, len(s.checkers))
	for name, c := range s.checkers {
		checkers[name] = c
	}
	s.mu.RUnlock()

	resp := &ReadyResponse{
		Ready:     true,
		Status:    StatusOK,
		Timestamp: s.now().UTC().Format(TimestampLayout),
		Checks:    make(map[string]CheckResult, len(checkers)),
	}

	for name, check := range checkers {
		start := time.Now()
		result := check(ctx)
		result.Name = name
		result.DurationMs = time.Since(start).Milliseconds()
		resp.Checks[name] = result

		switch result.Status {
		case StatusUnhealthy:
			resp.Ready = false
			resp.Status = StatusUnhealthy
		case StatusDegraded:
			if resp.Status == StatusOK {
				resp.Status = StatusDegraded
			}
		}
	}

	if !resp.Ready {
		s.log.Warn("Readiness check failed", zap.Any("checks", resp.Checks))
	}

	return resp
}

// BreakerChecker reports an open breaker as unhealthy and a half-open one as
// degraded. A nil breaker is always healthy.
func BreakerChecker(cb *gobreaker.CircuitBreaker) Checker {
	return func(ctx context.Context) CheckResult {
		if cb == nil {
			return CheckResult{Status: StatusOK, Message: "circuit breaker disabled"}
		}
		switch cb.State() {
		case gobreaker.StateOpen:
			return CheckResult{Status: StatusUnhealthy, Message: "circuit open"}
		case gobreaker.StateHalfOpen:
			return CheckResult{Status: StatusDegraded, Message: "circuit half-open"}
		default:
			return CheckResult{Status: StatusOK}
		}
	}
}
