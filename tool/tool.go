// Package tool implements the capability subsystem that lets the supervisor
// route text-encoded invocations to registered callables. Tools are pure-ish
// text-to-text capabilities resolved by exact name; a missing name is not an
// error at registry level but is surfaced as a textual result by the caller.
package tool

import "context"

// Tool defines the interface for extending agent capabilities with external
// functions.
//
// Tool implementations should:
//   - Provide clear, descriptive names (snake_case recommended)
//   - Terminate; no cancellation is imposed beyond the passed context
//   - Be thread-safe if used concurrently
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Invoke executes the tool with the raw input text from the wire
	// protocol and returns its textual result.
	Invoke(ctx context.Context, input string) (string, error)
}

// Func is a generic adapter that exposes a plain Go function as a tool.
// It has no internal mutable state after construction and is safe for
// concurrent use by multiple goroutines.
type Func struct {
	name string
	fn   func(ctx context.Context, input string) (string, error)
}

// NewFunc constructs a Func tool from a name and implementation.
//
// Example:
//
//	echo := tool.NewFunc("echo_tool", func(_ context.Context, input string) (string, error) {
//	    return "ECHO: " + input, nil
//	})
func NewFunc(name string, fn func(ctx context.Context, input string) (string, error)) *Func {
	return &Func{name: name, fn: fn}
}

// Name implements the Tool interface.
func (f *Func) Name() string { return f.name }

// Invoke implements the Tool interface by calling the wrapped function.
func (f *Func) Invoke(ctx context.Context, input string) (string, error) {
	return f.fn(ctx, input)
}
