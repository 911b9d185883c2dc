// Package memory contains the two-tier memory owned by an agent instance:
// a short-term recent-turns buffer exposing a bounded trailing window, and a
// long-term append-only sequence of timestamped entries with an optional
// durable sink (AppendLog).
//
// Rationale: keeps the tier semantics centralized while allowing pluggable
// durable backends (newline-delimited JSON files, SQLite, ...) to be added
// without touching the supervisor.
package memory
