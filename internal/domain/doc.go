// Package domain contains the core domain entities and value objects for wxship.
//
// This package represents the innermost layer of the architecture. It has no
// dependencies on infrastructure concerns (HTTP, file system, logging) and
// contains only pure business logic.
//
// # Entities
//
//   - [ArchiveRecord]: One periodic sensor snapshot produced by the host data store
//   - [UploadJob]: An ArchiveRecord bound to a sequence number and enqueue time
//   - [FieldMapping]: The static table mapping record fields to wire keys
//   - [Outcome]: The terminal state every job reaches exactly once
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (records are copied on enqueue)
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
