package model

import (
	"context"
	"fmt"

	"github.com/hupe1980/cogniloop/core"
)

// TokenUsage captures token usage statistics for a single model call.
// Counters a provider does not report stay at their zero value.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add merges another usage record into u, counter by counter.
func (u *TokenUsage) Add(other TokenUsage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

// Response is the completed output of one model call. It is read-only to the
// supervisor once returned.
type Response struct {
	Content string     `json:"content"`
	Usage   TokenUsage `json:"usage"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface the supervisor requires to drive
// generation. Implementations must not mutate the message slice; a failed
// call returns an error which the supervisor surfaces to its caller.
type Model interface {
	Invoke(ctx context.Context, messages []core.Message) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// Func adapts a plain function to the Model interface. Useful for scripted
// behavior in tests and examples.
type Func func(ctx context.Context, messages []core.Message) (*Response, error)

// Invoke implements Model by calling f.
func (f Func) Invoke(ctx context.Context, messages []core.Message) (*Response, error) {
	return f(ctx, messages)
}

// Info implements Model with static metadata.
func (Func) Info() Info { return Info{Name: "func", Provider: "custom"} }

// MockModel is a lightweight in-memory Model useful for tests & examples.
// Responses are keyed by the content of the last input message.
type MockModel struct {
	info      Info
	responses map[string]Response
}

// NewMockModel constructs a MockModel.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]Response),
	}
}

// AddResponse registers a deterministic canned response for an input prompt.
func (m *MockModel) AddResponse(prompt string, resp Response) { m.responses[prompt] = resp }

// Invoke implements Model; returns the canned response for the last message
// or a generic echo when none is registered.
func (m *MockModel) Invoke(_ context.Context, messages []core.Message) (*Response, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("no messages provided")
	}
	last := messages[len(messages)-1].Content
	if resp, ok := m.responses[last]; ok {
		return &resp, nil
	}
	return &Response{Content: fmt.Sprintf("Mock response to: %s", last)}, nil
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }
