package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/cogniloop/core"
	"github.com/hupe1980/cogniloop/model"
	"github.com/hupe1980/cogniloop/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedModel mimics a deterministic collaborator: a three-step plan with
// one tool-protocol step, direct reasoning for the rest, and a fixed
// reflection.
func scriptedModel() model.Model {
	return model.Func(func(_ context.Context, messages []core.Message) (*model.Response, error) {
		last := messages[len(messages)-1].Content
		switch {
		case strings.Contains(last, "Planner"):
			return &model.Response{
				Content: `{"steps":["Gather sample data","TOOL:echo_tool:process sample data","Summarize insights"],"rationale":"Simple 3-step plan"}`,
				Usage:   model.TokenUsage{PromptTokens: 25, CompletionTokens: 15, TotalTokens: 40},
			}, nil
		case strings.Contains(last, "Reflector"):
			return &model.Response{
				Content: "FINAL: The agent successfully completed the task.",
				Usage:   model.TokenUsage{PromptTokens: 10, CompletionTokens: 8, TotalTokens: 18},
			}, nil
		case strings.Contains(last, "TOOL:"):
			return &model.Response{
				Content: "TOOL:echo_tool:process sample data",
				Usage:   model.TokenUsage{PromptTokens: 20, CompletionTokens: 10, TotalTokens: 30},
			}, nil
		default:
			return &model.Response{
				Content: "Direct reasoning result for step.",
				Usage:   model.TokenUsage{PromptTokens: 15, CompletionTokens: 10, TotalTokens: 25},
			}, nil
		}
	})
}

func echoTool() tool.Tool {
	return tool.NewFunc("echo_tool", func(_ context.Context, input string) (string, error) {
		return "ECHO: " + input, nil
	})
}

func TestAgent_Run_Basic(t *testing.T) {
	a := New(scriptedModel(), func(o *Options) {
		o.Tools = []tool.Tool{echoTool()}
	})

	result, err := a.Run(context.Background(), "Test simple reasoning task")
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "Test simple reasoning task", result.Objective)
	assert.Equal(t, "The agent successfully completed the task.", result.FinalAnswer)
	assert.NotEmpty(t, result.Trace)
	assert.NotEmpty(t, result.KnowledgeGraph.Nodes)

	// one plan call + three acting calls + one reflection call
	assert.Equal(t, 5, result.Usage.Steps)
	assert.Equal(t, 85, result.Usage.PromptTokens)
	assert.Equal(t, 53, result.Usage.CompletionTokens)
	assert.Equal(t, 138, result.Usage.TotalTokens)
	assert.GreaterOrEqual(t, result.Usage.RuntimeSec, 0.0)
}

func TestAgent_Run_TraceOrdering(t *testing.T) {
	a := New(scriptedModel(), func(o *Options) {
		o.Tools = []tool.Tool{echoTool()}
	})

	result, err := a.Run(context.Background(), "ordering")
	require.NoError(t, err)

	stages := make([]core.Stage, 0, len(result.Trace))
	for _, entry := range result.Trace {
		stages = append(stages, entry.Stage())
	}
	assert.Equal(t, []core.Stage{core.StagePlan, core.StageAct, core.StageTool, core.StageAct, core.StageReflect}, stages)
}

func TestAgent_Run_ToolRouting(t *testing.T) {
	a := New(scriptedModel(), func(o *Options) {
		o.Tools = []tool.Tool{echoTool()}
	})

	result, err := a.Run(context.Background(), "Run a task that uses echo_tool")
	require.NoError(t, err)

	var toolEntries []core.ToolEntry
	for _, entry := range result.Trace {
		if te, ok := entry.(core.ToolEntry); ok {
			toolEntries = append(toolEntries, te)
		}
	}
	require.Len(t, toolEntries, 1)
	assert.Equal(t, "echo_tool", toolEntries[0].Name)
	assert.Equal(t, "ECHO: process sample data", toolEntries[0].Response)
}

func TestAgent_Run_UnknownToolRecovered(t *testing.T) {
	m := model.Func(func(_ context.Context, messages []core.Message) (*model.Response, error) {
		last := messages[len(messages)-1].Content
		switch {
		case strings.Contains(last, "Planner"):
			return &model.Response{Content: `{"steps":["use a ghost"],"rationale":"r"}`}, nil
		case strings.Contains(last, "Reflector"):
			return &model.Response{Content: "FINAL: done"}, nil
		default:
			return &model.Response{Content: "TOOL:ghost:x"}, nil
		}
	})
	a := New(m)

	result, err := a.Run(context.Background(), "unknown tool")
	require.NoError(t, err)

	require.IsType(t, core.ToolEntry{}, result.Trace[1])
	entry := result.Trace[1].(core.ToolEntry)
	assert.Equal(t, "ghost", entry.Name)
	assert.Equal(t, "[Unknown tool: ghost]", entry.Response)
	assert.Equal(t, core.StageReflect, result.Trace[len(result.Trace)-1].Stage())
}

func TestAgent_Run_ToolFailureRecovered(t *testing.T) {
	broken := tool.NewFunc("broken", func(_ context.Context, _ string) (string, error) {
		return "", errors.New("boom")
	})
	m := model.Func(func(_ context.Context, messages []core.Message) (*model.Response, error) {
		last := messages[len(messages)-1].Content
		switch {
		case strings.Contains(last, "Planner"):
			return &model.Response{Content: `{"steps":["break things"],"rationale":"r"}`}, nil
		case strings.Contains(last, "Reflector"):
			return &model.Response{Content: "FINAL: done"}, nil
		default:
			return &model.Response{Content: "TOOL:broken:anything"}, nil
		}
	})
	a := New(m, func(o *Options) { o.Tools = []tool.Tool{broken} })

	result, err := a.Run(context.Background(), "tool failure")
	require.NoError(t, err)

	entry := result.Trace[1].(core.ToolEntry)
	assert.Equal(t, "broken", entry.Name)
	assert.Equal(t, "[Tool broken failed: boom]", entry.Response)
}

func TestAgent_Run_FallbackPlan(t *testing.T) {
	m := model.Func(func(_ context.Context, messages []core.Message) (*model.Response, error) {
		last := messages[len(messages)-1].Content
		if strings.Contains(last, "Reflector") {
			return &model.Response{Content: "FINAL: done"}, nil
		}
		return &model.Response{Content: "no structured plan here, just prose"}, nil
	})
	a := New(m)

	result, err := a.Run(context.Background(), "fallback")
	require.NoError(t, err)

	planEntry := result.Trace[0].(core.PlanEntry)
	assert.Equal(t, []string{"Perform the task directly"}, planEntry.Plan.Steps)
	assert.Equal(t, "Fallback simple plan.", planEntry.Plan.Rationale)

	// one plan + one fallback step + one reflection
	assert.Equal(t, 3, result.Usage.Steps)
	assert.Equal(t, core.StageReflect, result.Trace[len(result.Trace)-1].Stage())
}

func TestAgent_Run_ModelFailureIsFatal(t *testing.T) {
	m := model.Func(func(_ context.Context, _ []core.Message) (*model.Response, error) {
		return nil, errors.New("provider unavailable")
	})
	a := New(m)

	result, err := a.Run(context.Background(), "doomed")
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestAgent_Run_ModelFailureMidRunIsFatal(t *testing.T) {
	m := model.Func(func(_ context.Context, messages []core.Message) (*model.Response, error) {
		last := messages[len(messages)-1].Content
		if strings.Contains(last, "Planner") {
			return &model.Response{Content: `{"steps":["one"],"rationale":"r"}`}, nil
		}
		return nil, errors.New("provider unavailable")
	})
	a := New(m)

	result, err := a.Run(context.Background(), "doomed")
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestAgent_Run_StreamingEvents(t *testing.T) {
	var events []core.Event
	sink := core.SinkFunc(func(e core.Event) { events = append(events, e) })

	a := New(scriptedModel(), func(o *Options) {
		o.Tools = []tool.Tool{echoTool()}
		o.EnableStreaming = true
		o.ThinkingDelay = time.Millisecond
	})

	result, err := a.Run(context.Background(), "Streaming test", func(o *RunOptions) { o.Sink = sink })
	require.NoError(t, err)

	// two events per acting step: model_thinking then model_content
	require.Len(t, events, 6)
	assert.Equal(t, core.EventModelThinking, events[0].Type)
	assert.Equal(t, "Thinking about step: Gather sample data", events[0].Data)
	assert.Equal(t, core.EventModelContent, events[1].Type)
	assert.Equal(t, "Produced: Direct reasoning result for step.", events[1].Data)
	assert.Equal(t, core.EventModelThinking, events[2].Type)
	assert.Equal(t, "Tool echo_tool executed.", events[3].Data)

	assert.Equal(t, 5, result.Usage.Steps)
}

func TestAgent_Run_NoSinkMeansNoEvents(t *testing.T) {
	a := New(scriptedModel(), func(o *Options) {
		o.Tools = []tool.Tool{echoTool()}
		o.EnableStreaming = true
		o.ThinkingDelay = time.Millisecond
	})

	result, err := a.Run(context.Background(), "silent")
	require.NoError(t, err)
	assert.Equal(t, 5, result.Usage.Steps)
}

func TestAgent_Run_StreamingDisabledIgnoresSink(t *testing.T) {
	var events []core.Event
	sink := core.SinkFunc(func(e core.Event) { events = append(events, e) })

	a := New(scriptedModel(), func(o *Options) {
		o.Tools = []tool.Tool{echoTool()}
	})

	result, err := a.Run(context.Background(), "silent", func(o *RunOptions) { o.Sink = sink })
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, 5, result.Usage.Steps)
}

func TestAgent_Run_ConfidenceBounds(t *testing.T) {
	reflections := map[string]float64{
		"ok":                          0.02,
		strings.Repeat("x", 50):       0.5,
		strings.Repeat("x", 100):      1.0,
		strings.Repeat("long ", 1000): 1.0,
	}
	for reflection, want := range reflections {
		m := model.Func(func(_ context.Context, messages []core.Message) (*model.Response, error) {
			last := messages[len(messages)-1].Content
			if strings.Contains(last, "Reflector") {
				return &model.Response{Content: reflection}, nil
			}
			return &model.Response{Content: `{"steps":[],"rationale":"empty"}`}, nil
		})
		a := New(m)

		result, err := a.Run(context.Background(), "confidence")
		require.NoError(t, err)

		entry := result.Trace[len(result.Trace)-1].(core.ReflectEntry)
		assert.InDelta(t, want, entry.Confidence, 1e-9)
		assert.GreaterOrEqual(t, entry.Confidence, 0.0)
		assert.LessOrEqual(t, entry.Confidence, 1.0)
	}
}

func TestAgent_Run_FinalAnswerStripsMarker(t *testing.T) {
	m := model.Func(func(_ context.Context, messages []core.Message) (*model.Response, error) {
		last := messages[len(messages)-1].Content
		if strings.Contains(last, "Reflector") {
			return &model.Response{Content: "FINAL:   padded answer  "}, nil
		}
		return &model.Response{Content: `{"steps":[],"rationale":"empty"}`}, nil
	})
	a := New(m)

	result, err := a.Run(context.Background(), "strip")
	require.NoError(t, err)
	assert.Equal(t, "padded answer", result.FinalAnswer)
}

func TestAgent_Run_StatePersistsAcrossRuns(t *testing.T) {
	a := New(scriptedModel(), func(o *Options) {
		o.Tools = []tool.Tool{echoTool()}
	})

	first, err := a.Run(context.Background(), "first")
	require.NoError(t, err)
	second, err := a.Run(context.Background(), "second")
	require.NoError(t, err)

	// graph state is agent-scoped: it never shrinks between runs
	assert.GreaterOrEqual(t, len(second.KnowledgeGraph.Nodes), len(first.KnowledgeGraph.Nodes))
	assert.GreaterOrEqual(t, len(second.KnowledgeGraph.Edges), len(first.KnowledgeGraph.Edges))

	// short-term memory accumulated entries from both runs, window capped at 5
	assert.Len(t, a.Memory().Context(), 5)
}

func TestAgent_Run_SystemPromptPrepended(t *testing.T) {
	var calls [][]core.Message
	m := model.Func(func(_ context.Context, messages []core.Message) (*model.Response, error) {
		calls = append(calls, messages)
		last := messages[len(messages)-1].Content
		if strings.Contains(last, "Planner") {
			return &model.Response{Content: `{"steps":["One step"],"rationale":"r"}`}, nil
		}
		return &model.Response{Content: "done"}, nil
	})

	a := New(m, func(o *Options) {
		o.SystemPrompt = "You are a careful assistant."
	})

	_, err := a.Run(context.Background(), "system prompt wiring")
	require.NoError(t, err)

	require.Len(t, calls, 3)
	for _, messages := range calls {
		require.Len(t, messages, 2)
		assert.Equal(t, core.RoleSystem, messages[0].Role)
		assert.Equal(t, "You are a careful assistant.", messages[0].Content)
		assert.Equal(t, core.RoleUser, messages[1].Role)
	}
}

func TestAgent_Run_NoSystemPromptMeansUserOnly(t *testing.T) {
	var calls [][]core.Message
	m := model.Func(func(_ context.Context, messages []core.Message) (*model.Response, error) {
		calls = append(calls, messages)
		return &model.Response{Content: "done"}, nil
	})

	a := New(m)

	_, err := a.Run(context.Background(), "no system prompt")
	require.NoError(t, err)

	for _, messages := range calls {
		require.Len(t, messages, 1)
		assert.Equal(t, core.RoleUser, messages[0].Role)
	}
}

func TestAgent_Run_ShortTermMemoryTagging(t *testing.T) {
	a := New(scriptedModel(), func(o *Options) {
		o.Tools = []tool.Tool{echoTool()}
	})

	_, err := a.Run(context.Background(), "memory tags")
	require.NoError(t, err)

	// plan + act + tool + act = 4 entries, all within the window
	ctx := a.Memory().Context()
	require.Len(t, ctx, 4)
	assert.Equal(t, "plan", ctx[0].Role)
	assert.Equal(t, "act", ctx[1].Role)
	assert.Equal(t, "tool", ctx[2].Role)
	assert.Equal(t, "ECHO: process sample data", ctx[2].Content)
}
