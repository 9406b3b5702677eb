package storage

import "sync"

// MemoryBackend keeps slots in process memory. WriteErr, when set, makes
// every Write fail, which is how tests simulate an exhausted quota.
type MemoryBackend struct {
	mu       sync.RWMutex
	data     map[string][]byte
	WriteErr error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (m *MemoryBackend) Read(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	if !ok {
		return nil, ErrSlotNotFound
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MemoryBackend) Write(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	val := make([]byte, len(data))
	copy(val, data)
	m.data[key] = val
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}

// SetWriteError toggles write failures under the lock.
func (m *MemoryBackend) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteErr = err
}
