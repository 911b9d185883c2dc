// Package core provides the foundational domain types shared across
// cogniloop. It defines the core abstractions for:
//
//   - Messages (ordered, role-tagged conversation units passed to models)
//   - Plans (the ordered step list produced by the planning stage)
//   - Trace entries (immutable, stage-tagged audit records of one run)
//   - Stream events (ordered progress notifications for caller sinks)
//   - Usage summaries and run results
//
// The package intentionally keeps implementation concerns (model providers,
// memory backends, the supervisor loop itself) out of scope, exposing small
// value types so higher layers remain decoupled and easily testable.
package core
