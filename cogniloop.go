// Package cogniloop provides a high-level façade over the supervisor agent
// and its service abstractions (model, tools, memory, knowledge graph &
// logging), enabling rapid construction of single-agent reasoning loops.
// Most applications interact with this package by:
//  1. Creating an agent via New() with a model implementation
//  2. Registering tools and optional memory / streaming overrides
//  3. Calling Run() with a free-text objective
//
// The façade delegates orchestration to agent.Agent while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable memory log and
// a structured logger.
package cogniloop

import (
	"github.com/hupe1980/cogniloop/agent"
	"github.com/hupe1980/cogniloop/logging"
	"github.com/hupe1980/cogniloop/memory"
	"github.com/hupe1980/cogniloop/model"
	"github.com/hupe1980/cogniloop/tool"
)

// RunOptions aliases agent.RunOptions so façade users can configure runs
// without importing the agent package.
type RunOptions = agent.RunOptions

// Options configures the agent built by New.
type Options struct {
	// Tools are the callables available for routed invocations.
	Tools []tool.Tool

	// MemoryLog is the optional durable sink for long-term entries. When
	// nil, long-term memory is process-memory-only.
	MemoryLog memory.AppendLog

	// EnableStreaming toggles progress event emission to run sinks.
	EnableStreaming bool

	// SystemPrompt, when non-empty, is prepended as a system message to
	// every model call.
	SystemPrompt string

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// New creates a supervisor agent with in-memory defaults and optional
// overrides.
func New(m model.Model, optFns ...func(o *Options)) *agent.Agent {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	mem := memory.New(func(o *memory.Options) {
		o.AppendLog = opts.MemoryLog
	})

	return agent.New(m, func(o *agent.Options) {
		o.Tools = opts.Tools
		o.Memory = mem
		o.EnableStreaming = opts.EnableStreaming
		o.SystemPrompt = opts.SystemPrompt
		o.Logger = opts.Logger
	})
}
