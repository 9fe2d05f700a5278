// Package ports defines the interfaces (ports) that connect the capture core
// to infrastructure adapters.
//
// Ports are the boundaries between the capture pipeline and the outside
// world. They define what the core needs from external systems without
// specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [Source]: delivers chunks of raw bytes from the acquisition hardware
//   - [Sink]: the append-only, buffered byte destination
//   - [Logger]: structured logging abstraction (re-exported from pkg/log)
//
// # Usage
//
// The capture core (internal/capture) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with concrete
// implementations (files, named pipes, stdin).
//
// This separation enables:
//   - Testing the pipeline with in-memory sources and sinks
//   - Swapping the transport without changing capture logic
//   - Clear boundaries and dependency direction
package ports
