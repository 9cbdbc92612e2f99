package memory

import "sync"

// Memory is an append-only history. With a positive capacity the oldest
// entries are dropped once it is full; a capacity of zero or less keeps
// everything.
type Memory[T any] struct {
	stream   []T
	capacity int
	mu       sync.RWMutex
}

func NewMemory[T any](capacity int) *Memory[T] {
	initial := capacity
	if initial <= 0 {
		initial = 16
	}
	return &Memory[T]{
		stream:   make([]T, 0, initial),
		capacity: capacity,
	}
}

// GetAll returns a copy of all entries in memory
func (m *Memory[T]) GetAll() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modifications
	entries := make([]T, len(m.stream))
	copy(entries, m.stream)
	return entries
}

func (m *Memory[T]) Store(data T) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stream = append(m.stream, data)
	if m.capacity > 0 && len(m.stream) > m.capacity {
		m.stream = m.stream[1:]
	}
}

func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.stream)
}
