package cogniloop

import (
	"context"
	"strings"
	"testing"

	"github.com/hupe1980/cogniloop/core"
	"github.com/hupe1980/cogniloop/memory"
	"github.com/hupe1980/cogniloop/model"
	"github.com/hupe1980/cogniloop/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLog struct {
	entries []memory.LongEntry
}

func (r *recordingLog) Append(entry memory.LongEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func facadeModel() model.Model {
	return model.Func(func(_ context.Context, messages []core.Message) (*model.Response, error) {
		last := messages[len(messages)-1].Content
		switch {
		case strings.Contains(last, "Planner"):
			return &model.Response{Content: `{"steps":["TOOL:echo_tool:hello"],"rationale":"r"}`}, nil
		case strings.Contains(last, "Reflector"):
			return &model.Response{Content: "FINAL: done"}, nil
		default:
			return &model.Response{Content: "TOOL:echo_tool:hello"}, nil
		}
	})
}

func TestNew_WiresToolsAndMemoryLog(t *testing.T) {
	memLog := &recordingLog{}
	echo := tool.NewFunc("echo_tool", func(_ context.Context, input string) (string, error) {
		return "ECHO: " + input, nil
	})

	agent := New(facadeModel(), func(o *Options) {
		o.Tools = []tool.Tool{echo}
		o.MemoryLog = memLog
	})

	result, err := agent.Run(context.Background(), "facade wiring")
	require.NoError(t, err)
	assert.Equal(t, "done", result.FinalAnswer)

	entry := result.Trace[1].(core.ToolEntry)
	assert.Equal(t, "ECHO: hello", entry.Response)

	require.NoError(t, agent.Memory().PersistLong("summary"))
	require.Len(t, memLog.entries, 1)
	assert.Equal(t, "summary", memLog.entries[0].Text)
}
