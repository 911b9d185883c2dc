package memory

import (
	"encoding/json"
	"fmt"
	"os"
)

// FileLog is an AppendLog writing one JSON-serialized entry per line to a
// file opened in append mode. Writes go straight to the file descriptor, so
// durability matches the underlying storage semantics.
type FileLog struct {
	f *os.File
}

// NewFileLog opens (creating if needed) the newline-delimited log at path.
func NewFileLog(path string) (*FileLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open memory log: %w", err)
	}
	return &FileLog{f: f}, nil
}

// Append implements AppendLog by writing one JSON line.
func (l *FileLog) Append(entry LongEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode memory entry: %w", err)
	}
	if _, err := l.f.Write(append(raw, '\n')); err != nil {
		return fmt.Errorf("write memory entry: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (l *FileLog) Close() error { return l.f.Close() }
