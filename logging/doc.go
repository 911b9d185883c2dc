// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug
// any structured logger. It offers:
//
//   - SlogAdapter wrapping an existing *slog.Logger
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - NewSlogLogger for quick text/JSON setup at a chosen level
package logging
