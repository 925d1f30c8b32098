package prefs

import (
	"context"
	"errors"
	"sort"
)

// Memory is an in-process Backend. The zero value is not usable; call NewMemory.
type Memory struct {
	values map[string]Value
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]Value)}
}

func (m *Memory) Lookup(_ context.Context, key string) (Value, bool, error) {
	v, ok := m.values[NormalizeKey(key)]
	return v, ok, nil
}

func (m *Memory) Put(_ context.Context, key string, v Value) error {
	if key == "" {
		return errors.New("put: empty key")
	}
	if _, err := v.Encode(); err != nil {
		return err
	}
	m.values[NormalizeKey(key)] = v
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	delete(m.values, NormalizeKey(key))
	return nil
}

// Keys returns all stored keys in byte order.
func (m *Memory) Keys(_ context.Context) ([]string, error) {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	return len(m.values)
}
