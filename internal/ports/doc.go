// Package ports defines the interfaces (ports) that connect the delivery
// worker to infrastructure adapters.
//
// Ports are the boundaries between the application core and the outside
// world. They define what the worker needs from external systems without
// specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [PayloadBuilder]: Transforms an archive record into the destination's wire URL
//   - [ResponseChecker]: Decides whether a raw HTTP response means success
//   - [Sender]: Performs a single HTTP attempt
//   - [UnitConverter]: Converts scalar values between physical units
//   - [RecordPrecheck]: Required-field predicate applied before any network attempt
//   - [Logger]: Structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// The delivery worker (internal/app) depends only on these interfaces.
// Per-destination adapters (internal/adapters) implement them, selected by
// composition rather than subclassing, so one generic worker serves every
// sink integration.
package ports
