// Package dto contains the Data Transfer Objects of the resource API and the
// mapper that translates them to and from domain.Resource.
//
// DTOs are separate from the domain entity to:
//   - Control what data is exposed in the API
//   - Handle JSON serialization/deserialization
//   - Expose derived, read-only fields that are never persisted
//   - Distinguish "field absent" from "field set to its zero value" on PATCH
//
// Naming convention:
//   - Request types: CreateDTO, UpdateDTO, PatchDTO
//   - Response types: ReadDTO
//
// Every mapping function is pure: identical input yields identical output and
// nothing outside the returned value is touched.
package dto
