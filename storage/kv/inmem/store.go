package inmemkv

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/trezcool/studytrack/core"
)

// Store is a process-local KVStore. It is the default driver for DEV and TEST.
type Store struct {
	mutex sync.RWMutex
	table map[string][]byte
}

var _ core.KVStore = (*Store)(nil)

func New() *Store {
	return &Store{table: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	val, ok := s.table[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	return clone(val), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.table[key] = clone(value)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.table, key)
	return nil
}

func (s *Store) Scan(_ context.Context, prefix string) ([][]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	keys := make([]string, 0)
	for k := range s.table {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	vals := make([][]byte, 0, len(keys))
	for _, k := range keys {
		vals = append(vals, clone(s.table[k]))
	}
	return vals, nil
}

// Keys returns every stored key in order.
func (s *Store) Keys() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	keys := make([]string, 0, len(s.table))
	for k := range s.table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) Close() error { return nil }

func clone(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
