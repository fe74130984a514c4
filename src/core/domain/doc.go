// Package domain contains the core domain model for the resource service.
//
// This package defines:
//   - Resource: the persisted entity, with identity assigned by storage
//   - Derived values computed from persisted state (Status, TotalValue)
//   - Domain errors shared by every layer
//
// Rules for this package:
//   - No infrastructure concerns (database, HTTP, etc.)
//   - Derived values are pure functions of persisted fields and are never stored
package domain
