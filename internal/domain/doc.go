// Package domain contains the core domain entities and value objects for the
// sample grabber.
//
// This package represents the innermost layer of the architecture. It has no
// dependencies on infrastructure concerns (file system, transport, logging)
// and contains only pure capture-session concepts.
//
// # Entities
//
//   - [TransferStats]: running transfer-rate report delivered with each chunk
//   - [Cause]: the condition that ended a capture session
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
