// Package agent provides the supervisor that drives an external language
// model through a strictly linear Plan -> Act -> Reflect cycle to satisfy a
// free-text objective.
//
// Each run produces an ordered, append-only trace of stage entries, merges
// produced text into the agent's memory tiers and knowledge graph, routes
// text-encoded tool invocations to the registry, aggregates token usage, and
// optionally streams progress events to a caller-supplied sink.
//
// Memory and knowledge graph state belong to the Agent instance and persist
// across runs; they are reset only by constructing a new agent.
package agent
