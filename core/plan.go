package core

import "encoding/json"

// Plan is the ordered step list plus rationale produced once per run by the
// planning stage. It is owned transiently by a single run.
type Plan struct {
	Steps     []string `json:"steps"`
	Rationale string   `json:"rationale"`
}

// FallbackPlan returns the fixed single-step plan substituted when the
// planning response cannot be decoded. Substitution is a local recovery; it
// never fails the run.
func FallbackPlan() Plan {
	return Plan{
		Steps:     []string{"Perform the task directly"},
		Rationale: "Fallback simple plan.",
	}
}

// ParsePlan decodes a planning response body into a Plan. Content that is not
// a JSON object with the expected shape yields FallbackPlan.
func ParsePlan(content string) Plan {
	var plan Plan
	if err := json.Unmarshal([]byte(content), &plan); err != nil {
		return FallbackPlan()
	}
	return plan
}

// JSON returns the plan's wire encoding, the same shape ParsePlan accepts.
func (p Plan) JSON() string {
	raw, err := json.Marshal(p)
	if err != nil {
		// Plan holds only strings; encoding cannot fail.
		panic(err)
	}
	return string(raw)
}
