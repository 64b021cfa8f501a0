// Package memory provides an in-process KV adapter. It backs tests and the
// default data backend for ad-hoc runs.
package memory

import (
	"context"
	"sync"

	"github.com/madhuerpdirect-droid/gts-chits/internal/keyval"
)

type Store struct {
	mu sync.Mutex
	m  map[string]string

	// MaxBytes caps the total stored size; zero means unlimited. Tests use
	// it to exercise quota handling.
	MaxBytes int
}

func New() *Store {
	return &Store{m: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.MaxBytes > 0 {
		total := len(value)
		for k, v := range s.m {
			if k == key {
				continue
			}
			total += len(v)
		}
		if total > s.MaxBytes {
			return keyval.ErrQuotaExceeded
		}
	}
	s.m[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func (s *Store) Close() error { return nil }
