// Package graph implements a naive subject-verb-object knowledge graph
// accumulator over produced text. It is a best-effort heuristic extractor,
// not a linguistic parser: it will miss or mis-attribute relations on
// complex sentences, and that imprecision is accepted.
package graph

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hupe1980/cogniloop/core"
)

// pairPattern matches a lowercase word (the verb), an optional "the" filler,
// and a capitalized word-token (the object).
var pairPattern = regexp.MustCompile(`\b([a-z]\w*)\s+(?:the\s+)?([A-Z][a-zA-Z]+)`)

// Accumulator incrementally grows a node set and edge list from text. Nodes
// and edges only grow; there is no removal. A node may exist with no
// incident edge (object-only mentions in subject-less segments).
//
// The accumulator is owned by an agent instance and mutated by at most one
// run at a time; it is not internally synchronized.
type Accumulator struct {
	seen  map[string]struct{}
	nodes []string
	edges []core.Triple
}

// New constructs an empty Accumulator.
func New() *Accumulator {
	return &Accumulator{seen: make(map[string]struct{})}
}

// AddText extracts triples from text and merges them into the graph.
//
// Example: "AI uses Data and improves Performance." yields nodes
// {AI, Data, Performance} and edges (AI, uses, Data),
// (AI, improves, Performance).
func (a *Accumulator) AddText(text string) {
	segments := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '?' || r == '!'
	})

	for _, segment := range segments {
		words := strings.Fields(segment)
		if len(words) == 0 {
			continue
		}

		// The first token is the segment's subject when capitalized.
		var subject string
		if first, _ := utf8.DecodeRuneInString(words[0]); unicode.IsUpper(first) {
			subject = words[0]
			a.addNode(subject)
		}

		for _, match := range pairPattern.FindAllStringSubmatch(segment, -1) {
			verb, object := match[1], match[2]
			if subject != "" {
				a.edges = append(a.edges, core.Triple{Subject: subject, Verb: verb, Object: object})
			}
			a.addNode(object)
		}
	}
}

func (a *Accumulator) addNode(name string) {
	if _, ok := a.seen[name]; ok {
		return
	}
	a.seen[name] = struct{}{}
	a.nodes = append(a.nodes, name)
}

// Summary returns a snapshot of the accumulated nodes (first-insertion
// order) and edges. The snapshot is a copy, not a view into internal state.
func (a *Accumulator) Summary() core.GraphSummary {
	nodes := make([]string, len(a.nodes))
	copy(nodes, a.nodes)
	edges := make([]core.Triple, len(a.edges))
	copy(edges, a.edges)
	return core.GraphSummary{Nodes: nodes, Edges: edges}
}
