package battle

import "fmt"

// DefaultLogCapacity bounds the battle log when no capacity is configured.
const DefaultLogCapacity = 50

// LogEntry is one human-readable line of battle narration.
type LogEntry struct {
	Round   int32
	Message string
}

// Log is a bounded ring buffer of narration entries. The orchestrator is
// the single writer; newest entries evict the oldest past capacity.
type Log struct {
	entries []LogEntry
	head    int // index of the oldest entry
	size    int
}

// NewLog creates a log with the given capacity (DefaultLogCapacity if <= 0).
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &Log{entries: make([]LogEntry, capacity)}
}

// Append adds a formatted entry, evicting the oldest when full.
func (l *Log) Append(round int32, format string, args ...any) {
	e := LogEntry{Round: round, Message: fmt.Sprintf(format, args...)}
	if l.size < len(l.entries) {
		l.entries[(l.head+l.size)%len(l.entries)] = e
		l.size++
		return
	}
	l.entries[l.head] = e
	l.head = (l.head + 1) % len(l.entries)
}

// Entries returns the log oldest → newest.
func (l *Log) Entries() []LogEntry {
	out := make([]LogEntry, l.size)
	for i := 0; i < l.size; i++ {
		out[i] = l.entries[(l.head+i)%len(l.entries)]
	}
	return out
}

// Len returns the number of retained entries.
func (l *Log) Len() int { return l.size }

// Capacity returns the fixed capacity.
func (l *Log) Capacity() int { return len(l.entries) }
