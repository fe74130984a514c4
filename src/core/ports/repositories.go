// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/repo and src/infra/cache. This keeps the core free of
// infrastructure dependencies.
package ports

import (
	"context"

	"resourcehub/src/core/domain"
)

// Repository is the base interface for all repositories.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// MutateFunc receives the current state of a resource and returns the state to persist.
// Returning an error aborts the update and leaves the stored record untouched.
type MutateFunc func(current domain.Resource) (domain.Resource, error)

// ResourceRepository persists resources.
// Every method is atomic with respect to a single resource.
type ResourceRepository interface {
	Repository

	// FindByID returns domain.ErrNotFound when no resource has the id.
	FindByID(ctx context.Context, id int64) (*domain.Resource, error)

	// FindPage returns the resources at offset (page-1)*pageSize in insertion
	// order, together with the total number of stored resources.
	// page and pageSize must both be >= 1.
	FindPage(ctx context.Context, page, pageSize int) ([]domain.Resource, int64, error)

	// Insert assigns a fresh id and timestamps. Ids are never reused.
	Insert(ctx context.Context, r domain.Resource) (*domain.Resource, error)

	// Replace overwrites the mutable fields of the resource with the given id.
	// The id and creation timestamp of the stored record are preserved.
	Replace(ctx context.Context, id int64, r domain.Resource) (*domain.Resource, error)

	// Update performs a read-modify-write on a single resource while holding
	// its lock, so concurrent writers to the same id cannot interleave.
	Update(ctx context.Context, id int64, mutate MutateFunc) (*domain.Resource, error)

	// Delete removes the resource. Deleting a missing id returns domain.ErrNotFound.
	Delete(ctx context.Context, id int64) error
}
