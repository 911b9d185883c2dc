package core

import "encoding/json"

// Stage labels the supervisor state that produced a trace entry.
type Stage string

// Supervisor stages in execution order.
const (
	StagePlan    Stage = "plan"
	StageAct     Stage = "act"
	StageTool    Stage = "tool"
	StageReflect Stage = "reflect"
)

// TraceEntry represents one stage-tagged record in a run's audit trail.
// Concrete entry types implement the unexported isTraceEntry marker enabling
// a closed set, so renderers and serializers can handle each case
// exhaustively.
type TraceEntry interface {
	Stage() Stage
	isTraceEntry()
}

// PlanEntry records the plan produced by the planning stage.
type PlanEntry struct {
	Plan Plan `json:"plan"`
}

// Stage implements the TraceEntry interface for PlanEntry.
func (PlanEntry) Stage() Stage { return StagePlan }

func (PlanEntry) isTraceEntry() {}

// MarshalJSON tags the entry with its stage discriminator.
func (e PlanEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Stage Stage `json:"stage"`
		Plan  Plan  `json:"plan"`
	}{StagePlan, e.Plan})
}

// ActEntry records direct reasoning output produced during an acting step.
type ActEntry struct {
	Content string `json:"content"`
}

// Stage implements the TraceEntry interface for ActEntry.
func (ActEntry) Stage() Stage { return StageAct }

func (ActEntry) isTraceEntry() {}

// MarshalJSON tags the entry with its stage discriminator.
func (e ActEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Stage   Stage  `json:"stage"`
		Content string `json:"content"`
	}{StageAct, e.Content})
}

// ToolEntry records a routed tool invocation, including failed lookups and
// tool execution failures, so the run log reflects every routing attempt.
type ToolEntry struct {
	Name     string `json:"name"`
	Response string `json:"response"`
}

// Stage implements the TraceEntry interface for ToolEntry.
func (ToolEntry) Stage() Stage { return StageTool }

func (ToolEntry) isTraceEntry() {}

// MarshalJSON tags the entry with its stage discriminator.
func (e ToolEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Stage    Stage  `json:"stage"`
		Name     string `json:"name"`
		Response string `json:"response"`
	}{StageTool, e.Name, e.Response})
}

// ReflectEntry records the reflection text and its length-derived confidence
// score in [0, 1].
type ReflectEntry struct {
	Reflection string  `json:"reflection"`
	Confidence float64 `json:"confidence"`
}

// Stage implements the TraceEntry interface for ReflectEntry.
func (ReflectEntry) Stage() Stage { return StageReflect }

func (ReflectEntry) isTraceEntry() {}

// MarshalJSON tags the entry with its stage discriminator.
func (e ReflectEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Stage      Stage   `json:"stage"`
		Reflection string  `json:"reflection"`
		Confidence float64 `json:"confidence"`
	}{StageReflect, e.Reflection, e.Confidence})
}
