package ports

import (
	"context"
)

// ExternalService is the base interface for adapters to external systems
// (cache servers and the like) that take part in health reporting.
type ExternalService interface {
	// Health checks if the external service is reachable.
	Health(ctx context.Context) error
}
