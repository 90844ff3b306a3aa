package store

// Memory is an in-memory KV used by tests and headless callers. It makes no
// persistence guarantees.
type Memory struct {
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.values[key] = value
	return nil
}

// Delete exists so tests can simulate a lost or corrupted key.
func (m *Memory) Delete(key string) {
	delete(m.values, key)
}
