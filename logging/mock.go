package logging

import "sync"

// MockLogger records entries for assertions in tests.
type MockLogger struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	err     error
	fields  []Field
}

// LogEntry is one captured call.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// NewMockLogger creates an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{mu: &sync.Mutex{}, entries: &[]LogEntry{}}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]Field, 0, len(m.fields)+len(fields))
	all = append(all, m.fields...)
	all = append(all, fields...)
	*m.entries = append(*m.entries, LogEntry{Level: level, Message: msg, Fields: all, Error: m.err})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("INFO", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("WARN", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

func (m *MockLogger) WithError(err error) Logger {
	child := m.child()
	child.err = err
	return child
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	child := m.child()
	child.fields = append(child.fields, Field{Key: key, Value: value})
	return child
}

func (m *MockLogger) WithFields(fields ...Field) Logger {
	child := m.child()
	child.fields = append(child.fields, fields...)
	return child
}

// child shares the entry buffer with its parent.
func (m *MockLogger) child() *MockLogger {
	fields := make([]Field, len(m.fields))
	copy(fields, m.fields)
	return &MockLogger{mu: m.mu, entries: m.entries, err: m.err, fields: fields}
}

// Entries returns a copy of everything logged so far.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogEntry, len(*m.entries))
	copy(out, *m.entries)
	return out
}

// HasEntry reports whether a message was logged at the given level.
func (m *MockLogger) HasEntry(level, msg string) bool {
	for _, e := range m.Entries() {
		if e.Level == level && e.Message == msg {
			return true
		}
	}
	return false
}
