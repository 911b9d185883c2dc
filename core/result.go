package core

// UsageSummary aggregates per-call token counters and one wall-clock runtime
// measurement into a single per-run record. Steps counts model invocations:
// one for planning, one per acting step, one for reflection.
type UsageSummary struct {
	Steps            int     `json:"steps"`
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	RuntimeSec       float64 `json:"runtime_sec"`
}

// Triple is one heuristically extracted subject-verb-object relation.
type Triple struct {
	Subject string `json:"subject"`
	Verb    string `json:"verb"`
	Object  string `json:"object"`
}

// GraphSummary is a point-in-time snapshot of the accumulated knowledge
// graph. It is a copy, not a view into accumulator state.
type GraphSummary struct {
	Nodes []string `json:"nodes"`
	Edges []Triple `json:"edges"`
}

// RunResult is the complete outcome of one supervisor run.
type RunResult struct {
	ID             string       `json:"id"`
	Objective      string       `json:"objective"`
	Trace          []TraceEntry `json:"trace"`
	FinalAnswer    string       `json:"final_answer"`
	Usage          UsageSummary `json:"usage"`
	KnowledgeGraph GraphSummary `json:"knowledge_graph"`
}
