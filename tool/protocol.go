package tool

import "strings"

// CallPrefix marks a model response line as a tool invocation. The full
// grammar is a miniature wire protocol: the prefix token followed by two
// colon-delimited fields, where the second field consumes the remainder of
// the content, embedded colons included.
//
//	TOOL:<name>:<input>
const CallPrefix = "TOOL:"

// Call is a parsed tool invocation from model output.
type Call struct {
	Name  string
	Input string
}

// ParseCall parses model output against the tool wire protocol. It returns
// ok=false when the content does not begin with the reserved prefix or lacks
// the second field; such content is treated as direct reasoning output by
// the supervisor.
func ParseCall(content string) (Call, bool) {
	if !strings.HasPrefix(content, CallPrefix) {
		return Call{}, false
	}
	parts := strings.SplitN(content, ":", 3)
	if len(parts) != 3 {
		return Call{}, false
	}
	return Call{Name: parts[1], Input: parts[2]}, true
}
