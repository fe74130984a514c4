package usecase

import (
	"context"
	"log/slog"
	"sort"

	"resourcehub/src/core/ports"
)

// CheckFunc adapts a plain function to ports.ExternalService.
type CheckFunc func(ctx context.Context) error

// Health calls f.
func (f CheckFunc) Health(ctx context.Context) error {
	return f(ctx)
}

// HealthService checks the critical dependencies of the application.
type HealthService struct {
	log        *slog.Logger
	components map[string]ports.ExternalService
}

// NewHealthService creates a HealthService with no registered components.
func NewHealthService(log *slog.Logger) *HealthService {
	return &HealthService{
		log:        log,
		components: make(map[string]ports.ExternalService),
	}
}

// Register adds a named component to the detailed health check.
// Repositories satisfy ports.ExternalService as well.
func (s *HealthService) Register(name string, c ports.ExternalService) {
	s.components[name] = c
}

// HealthStatus represents the health of the application.
type HealthStatus struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// ComponentHealth represents the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check runs every registered component check.
// Overall status is "ok" when all pass and "degraded" otherwise.
func (s *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:     "ok",
		Components: make(map[string]ComponentHealth, len(s.components)),
	}

	names := make([]string, 0, len(s.components))
	for name := range s.components {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.components[name].Health(ctx); err != nil {
			status.Status = "degraded"
			status.Components[name] = ComponentHealth{
				Status:  "unhealthy",
				Message: err.Error(),
			}
			s.log.Warn("health check failed", "component", name, "error", err)
			continue
		}
		status.Components[name] = ComponentHealth{Status: "healthy"}
	}

	return status
}
