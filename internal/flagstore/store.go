package flagstore

import (
	"fmt"
	"os"
	"slices"
	"sync/atomic"

	"github.com/BurntSushi/toml"
)

// Store is a Source backed by a TOML document. It is safe for concurrent use; Reload swaps
// the whole table at once.
type Store struct {
	path  string
	table atomic.Pointer[map[string]any]
}

func decode(data []byte) (map[string]any, error) {
	table := make(map[string]any)
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	return table, nil
}

func Parse(data []byte) (*Store, error) {
	table, err := decode(data)
	if err != nil {
		return nil, err
	}
	s := &Store{}
	s.table.Store(&table)
	return s, nil
}

func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Path() string { return s.path }

// Reload re-reads the file. On failure the previous table stays in effect.
func (s *Store) Reload() error {
	if s.path == "" {
		return fmt.Errorf("store is not backed by a file")
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read flags: %w", err)
	}
	table, err := decode(data)
	if err != nil {
		return fmt.Errorf("flags %q: %w", s.path, err)
	}
	s.table.Store(&table)
	return nil
}

func (s *Store) Get(key string) any {
	table := s.table.Load()
	if table == nil {
		return nil
	}
	return lookup(*table, key)
}

// Keys lists dotted paths of all non-table values, sorted.
func (s *Store) Keys() []string {
	table := s.table.Load()
	if table == nil {
		return nil
	}
	var keys []string
	var walk func(prefix string, t map[string]any)
	walk = func(prefix string, t map[string]any) {
		for k, v := range t {
			if sub, ok := v.(map[string]any); ok {
				walk(prefix+k+".", sub)
				continue
			}
			keys = append(keys, prefix+k)
		}
	}
	walk("", *table)
	slices.Sort(keys)
	return keys
}
