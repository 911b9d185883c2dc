package agent

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hupe1980/cogniloop/core"
	"github.com/hupe1980/cogniloop/graph"
	"github.com/hupe1980/cogniloop/logging"
	"github.com/hupe1980/cogniloop/memory"
	"github.com/hupe1980/cogniloop/model"
	"github.com/hupe1980/cogniloop/tool"
)

// Options configures an Agent instance.
//
// Use functional options with New to override defaults.
type Options struct {
	// Tools are the callables available for routed invocations.
	Tools []tool.Tool
	// Memory holds the agent's short- and long-term tiers. A fresh
	// in-process Memory is used when nil.
	Memory *memory.Memory
	// Graph is the knowledge graph accumulator. A fresh one is used when nil.
	Graph *graph.Accumulator
	// EnableStreaming toggles progress event emission to run sinks.
	EnableStreaming bool
	// ThinkingDelay paces streamed thinking events (simulated latency, not
	// a correctness requirement).
	ThinkingDelay time.Duration
	// SystemPrompt, when non-empty, is prepended as a system message to
	// every model call of a run.
	SystemPrompt string
	// Logger receives stage-transition and recovery diagnostics.
	Logger logging.Logger
}

// RunOptions configures a single run.
type RunOptions struct {
	// Sink receives stream events when streaming is enabled. A nil sink
	// means no events are emitted (silent no-op, never an error).
	Sink core.Sink
}

// Agent is the orchestration supervisor. It owns its Memory and knowledge
// graph across runs, while each run's plan, trace and usage summary are
// owned by that run alone.
//
// An agent instance processes at most one run at a time: a second Run
// invoked concurrently would race on the shared Memory and graph state. Add
// external synchronization if concurrent runs are required.
type Agent struct {
	model         model.Model
	tools         *tool.Registry
	memory        *memory.Memory
	graph         *graph.Accumulator
	streaming     bool
	thinkingDelay time.Duration
	systemPrompt  string
	logger        logging.Logger
}

// New constructs an Agent with optional overrides. Defaults: no tools,
// fresh in-process memory and graph, streaming off, 50ms thinking delay,
// no-op logger.
func New(m model.Model, optFns ...func(o *Options)) *Agent {
	opts := Options{
		ThinkingDelay: 50 * time.Millisecond,
		Logger:        logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Memory == nil {
		opts.Memory = memory.New()
	}
	if opts.Graph == nil {
		opts.Graph = graph.New()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Agent{
		model:         m,
		tools:         tool.NewRegistry(opts.Tools...),
		memory:        opts.Memory,
		graph:         opts.Graph,
		streaming:     opts.EnableStreaming,
		thinkingDelay: opts.ThinkingDelay,
		systemPrompt:  opts.SystemPrompt,
		logger:        opts.Logger,
	}
}

// messages builds the message list for one model call, prepending the
// configured system prompt when present.
func (a *Agent) messages(prompt string) []core.Message {
	if a.systemPrompt == "" {
		return []core.Message{core.NewUserMessage(prompt)}
	}
	return []core.Message{core.NewSystemMessage(a.systemPrompt), core.NewUserMessage(prompt)}
}

// Memory returns the agent's memory tiers.
func (a *Agent) Memory() *memory.Memory { return a.memory }

// Graph returns the agent's knowledge graph accumulator.
func (a *Agent) Graph() *graph.Accumulator { return a.graph }

// Run drives one Plan -> Act -> Reflect cycle for the objective. The model
// is invoked once for planning, once per plan step and once for reflection;
// a failed model call aborts the run with no partial result. Tool failures
// and unknown tools are recovered locally and reported in the trace.
func (a *Agent) Run(ctx context.Context, objective string, optFns ...func(o *RunOptions)) (*core.RunResult, error) {
	var runOpts RunOptions
	for _, fn := range optFns {
		fn(&runOpts)
	}

	sink := runOpts.Sink
	if !a.streaming {
		sink = nil
	}

	start := time.Now()
	runID := core.NewID()
	a.logger.Debug("run started", "run_id", runID, "objective", objective)

	var trace []core.TraceEntry
	var usage core.UsageSummary

	// Planning
	plan, err := a.plan(ctx, objective, &trace, &usage)
	if err != nil {
		return nil, err
	}

	// Acting
	for i, step := range plan.Steps {
		if err := a.act(ctx, i, step, sink, &trace, &usage); err != nil {
			return nil, err
		}
	}

	// Reflecting
	reflection, err := a.reflect(ctx, objective, &trace, &usage)
	if err != nil {
		return nil, err
	}

	finalAnswer := strings.TrimSpace(strings.TrimPrefix(reflection, "FINAL:"))
	usage.RuntimeSec = round(time.Since(start).Seconds(), 3)

	a.logger.Debug("run completed", "run_id", runID, "steps", usage.Steps, "runtime_sec", usage.RuntimeSec)

	return &core.RunResult{
		ID:             runID,
		Objective:      objective,
		Trace:          trace,
		FinalAnswer:    finalAnswer,
		Usage:          usage,
		KnowledgeGraph: a.graph.Summary(),
	}, nil
}

// plan invokes the model once and decodes its output into a Plan, falling
// back to the fixed single-step plan when decoding fails.
func (a *Agent) plan(ctx context.Context, objective string, trace *[]core.TraceEntry, usage *core.UsageSummary) (core.Plan, error) {
	prompt := fmt.Sprintf("Planner: Create a plan to achieve the objective: %s", objective)

	resp, err := a.model.Invoke(ctx, a.messages(prompt))
	if err != nil {
		return core.Plan{}, fmt.Errorf("planning call failed: %w", err)
	}

	plan := core.ParsePlan(resp.Content)
	*trace = append(*trace, core.PlanEntry{Plan: plan})

	a.memory.AddShort("plan", plan.JSON())

	addUsage(usage, resp.Usage)
	a.logger.Debug("plan produced", "steps", len(plan.Steps))

	return plan, nil
}

// act executes one plan step: emits pacing events, invokes the model, routes
// tool-protocol output through the registry and feeds the produced text into
// the knowledge graph.
func (a *Agent) act(ctx context.Context, index int, step string, sink core.Sink, trace *[]core.TraceEntry, usage *core.UsageSummary) error {
	if sink != nil {
		sink.Emit(core.Event{Type: core.EventModelThinking, Data: fmt.Sprintf("Thinking about step: %s", step)})
		if err := a.pace(ctx); err != nil {
			return err
		}
	}

	resp, err := a.model.Invoke(ctx, a.messages(fmt.Sprintf("Perform step: %s", step)))
	if err != nil {
		return fmt.Errorf("acting call failed at step %d: %w", index+1, err)
	}

	content := resp.Content

	var produced string
	if call, ok := tool.ParseCall(content); ok {
		produced = a.routeTool(ctx, call)
		if sink != nil {
			sink.Emit(core.Event{Type: core.EventModelContent, Data: fmt.Sprintf("Tool %s executed.", call.Name)})
		}
		*trace = append(*trace, core.ToolEntry{Name: call.Name, Response: produced})
		a.memory.AddShort("tool", produced)
	} else {
		produced = content
		if sink != nil {
			sink.Emit(core.Event{Type: core.EventModelContent, Data: fmt.Sprintf("Produced: %s", content)})
		}
		*trace = append(*trace, core.ActEntry{Content: content})
		a.memory.AddShort("act", content)
	}

	a.graph.AddText(produced)
	addUsage(usage, resp.Usage)

	return nil
}

// routeTool resolves and invokes a parsed tool call. Unknown tools and tool
// execution failures are recovered into textual results so a single bad
// call never aborts the run.
func (a *Agent) routeTool(ctx context.Context, call tool.Call) string {
	t, ok := a.tools.Lookup(call.Name)
	if !ok {
		a.logger.Warn("unknown tool requested", "tool", call.Name)
		return fmt.Sprintf("[Unknown tool: %s]", call.Name)
	}

	result, err := t.Invoke(ctx, call.Input)
	if err != nil {
		a.logger.Warn("tool execution failed", "tool", call.Name, "error", err)
		return fmt.Sprintf("[Tool %s failed: %s]", call.Name, err)
	}

	return result
}

// reflect invokes the model once more and scores the reflection with a crude
// length-derived confidence proxy: monotonic in text length, capped at 1.0,
// no semantic understanding.
func (a *Agent) reflect(ctx context.Context, objective string, trace *[]core.TraceEntry, usage *core.UsageSummary) (string, error) {
	prompt := fmt.Sprintf("Reflector: Reflect on how well the agent achieved the objective: %s", objective)

	resp, err := a.model.Invoke(ctx, a.messages(prompt))
	if err != nil {
		return "", fmt.Errorf("reflection call failed: %w", err)
	}

	reflection := resp.Content
	confidence := round(math.Min(1.0, float64(len(reflection))/100.0), 2)
	*trace = append(*trace, core.ReflectEntry{Reflection: reflection, Confidence: confidence})

	addUsage(usage, resp.Usage)
	a.logger.Debug("reflection produced", "confidence", confidence)

	return reflection, nil
}

// pace applies the fixed thinking delay, honoring context cancellation.
func (a *Agent) pace(ctx context.Context) error {
	if a.thinkingDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(a.thinkingDelay):
		return nil
	}
}

// addUsage merges one model call's counters into the run summary and counts
// the call as a step.
func addUsage(sum *core.UsageSummary, u model.TokenUsage) {
	sum.PromptTokens += u.PromptTokens
	sum.CompletionTokens += u.CompletionTokens
	sum.TotalTokens += u.TotalTokens
	sum.Steps++
}

func round(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
