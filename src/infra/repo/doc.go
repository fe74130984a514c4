// Package repo contains the storage adapters for resources.
//
// This package implements ports.ResourceRepository twice:
//   - MemoryRepository keeps everything in process memory (default driver, tests)
//   - PostgresRepository persists to PostgreSQL through pgx
//
// Both assign ids monotonically, never reuse them, and order pages by
// insertion. Adapters receive their dependencies via constructor injection.
package repo
