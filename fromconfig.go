package cogniloop

import (
	"fmt"
	"io"
	"os"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/hupe1980/cogniloop/agent"
	"github.com/hupe1980/cogniloop/config"
	"github.com/hupe1980/cogniloop/logging"
	"github.com/hupe1980/cogniloop/memory"
	"github.com/hupe1980/cogniloop/memory/sqlitelog"
	"github.com/hupe1980/cogniloop/model"
	anthropicmodel "github.com/hupe1980/cogniloop/model/anthropic"
	openaimodel "github.com/hupe1980/cogniloop/model/openai"
)

// NewFromConfig builds an agent from a validated configuration: the model
// provider, the durable memory log and the log level are all selected from
// cfg. Functional options layer on top of the configuration; an explicit
// Logger or MemoryLog override wins over the configured one.
//
// The returned io.Closer owns the durable log handle (a no-op when the
// configuration is process-memory-only) and must be closed once the agent is
// no longer used.
func NewFromConfig(cfg *config.Config, optFns ...func(o *Options)) (*agent.Agent, io.Closer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	m, err := modelFromConfig(cfg.Model)
	if err != nil {
		return nil, nil, err
	}

	memLog := opts.MemoryLog
	closer := io.Closer(nopCloser{})
	if memLog == nil {
		memLog, closer, err = memoryLogFromConfig(cfg.Memory)
		if err != nil {
			return nil, nil, err
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewSlogLogger(logging.ParseLevel(cfg.LogLevel), "text", os.Stderr)
	}

	mem := memory.New(func(o *memory.Options) {
		o.AppendLog = memLog
		o.ContextWindow = cfg.Memory.ContextWindow
	})

	a := agent.New(m, func(o *agent.Options) {
		o.Tools = opts.Tools
		o.Memory = mem
		o.EnableStreaming = cfg.Streaming || opts.EnableStreaming
		o.SystemPrompt = opts.SystemPrompt
		o.Logger = logger
	})

	return a, closer, nil
}

// modelFromConfig instantiates the provider adapter named by the config.
func modelFromConfig(mc config.ModelConfig) (model.Model, error) {
	switch mc.Provider {
	case "openai":
		return openaimodel.NewModel(func(o *openaimodel.Options) {
			if mc.Name != "" {
				o.Model = mc.Name
			}
			o.Temperature = mc.Temperature
			o.MaxCompletionTokens = mc.MaxTokens
			o.APIKey = mc.APIKey
		}), nil
	case "anthropic":
		return anthropicmodel.NewModel(func(o *anthropicmodel.Options) {
			if mc.Name != "" {
				o.Model = anthropicsdk.Model(mc.Name)
			}
			o.Temperature = mc.Temperature
			o.MaxTokens = mc.MaxTokens
			o.APIKey = mc.APIKey
		}), nil
	case "mock":
		name := mc.Name
		if name == "" {
			name = "mock"
		}
		return model.NewMockModel(name, "mock"), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %q", mc.Provider)
	}
}

// memoryLogFromConfig opens the configured durable log backend. The second
// return value closes the backend's underlying handle.
func memoryLogFromConfig(mc config.MemoryConfig) (memory.AppendLog, io.Closer, error) {
	switch mc.LogDriver {
	case "":
		return nil, nopCloser{}, nil
	case "file":
		log, err := memory.NewFileLog(mc.LogPath)
		if err != nil {
			return nil, nil, err
		}
		return log, log, nil
	case "sqlite":
		log, err := sqlitelog.New(mc.LogPath)
		if err != nil {
			return nil, nil, err
		}
		return log, log, nil
	default:
		return nil, nil, fmt.Errorf("unknown memory log driver: %q", mc.LogDriver)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
