package memory

import (
	"fmt"
	"time"
)

// ShortEntry is one short-term turn record.
type ShortEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LongEntry is one long-term record. Entries are immutable once written and
// monotonically timestamped in append order.
type LongEntry struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// AppendLog is a durable append-only sink for long-term entries. Append must
// complete the write before returning; there is no rewrite and no
// compaction.
type AppendLog interface {
	Append(entry LongEntry) error
}

// Options configures a Memory instance.
type Options struct {
	// AppendLog is the optional durable sink for long-term entries. When
	// nil, long-term memory is process-memory-only.
	AppendLog AppendLog
	// ContextWindow is the number of trailing short-term entries visible
	// through Context.
	ContextWindow int
}

// Memory holds the two tiers for one agent instance. It persists across
// runs and is reset only by constructing a new agent.
//
// Memory is not internally synchronized: an agent instance processes at most
// one run at a time, and callers wanting concurrent runs must add external
// synchronization.
type Memory struct {
	shortTerm     []ShortEntry
	longTerm      []LongEntry
	log           AppendLog
	contextWindow int
}

// New constructs a Memory with optional overrides. The default context
// window is 5 entries.
func New(optFns ...func(o *Options)) *Memory {
	opts := Options{ContextWindow: 5}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Memory{
		log:           opts.AppendLog,
		contextWindow: opts.ContextWindow,
	}
}

// AddShort appends a short-term entry. Older entries remain stored but fall
// out of the Context view once the window slides past them.
func (m *Memory) AddShort(role, content string) {
	m.shortTerm = append(m.shortTerm, ShortEntry{Role: role, Content: content})
}

// Context returns the trailing window of short-term entries, oldest-first.
// The returned slice is a copy; mutating it does not affect the buffer.
func (m *Memory) Context() []ShortEntry {
	start := len(m.shortTerm) - m.contextWindow
	if start < 0 {
		start = 0
	}
	out := make([]ShortEntry, len(m.shortTerm)-start)
	copy(out, m.shortTerm[start:])
	return out
}

// PersistLong appends a timestamped entry to long-term memory and, when a
// durable log is configured, writes it through synchronously. A durable
// write failure is returned to the caller; the in-process entry is kept
// either way since it was already observed.
func (m *Memory) PersistLong(text string) error {
	entry := LongEntry{Text: text, Timestamp: time.Now().UTC()}
	m.longTerm = append(m.longTerm, entry)

	if m.log != nil {
		if err := m.log.Append(entry); err != nil {
			return fmt.Errorf("append to durable log: %w", err)
		}
	}

	return nil
}

// RecallLong returns the last n long-term entries (fewer if the log is
// shorter), most-recent-last. The returned slice is a copy.
func (m *Memory) RecallLong(n int) []LongEntry {
	start := len(m.longTerm) - n
	if start < 0 {
		start = 0
	}
	out := make([]LongEntry, len(m.longTerm)-start)
	copy(out, m.longTerm[start:])
	return out
}
