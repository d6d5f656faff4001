package cart

import (
	"context"
	"sync"

	"github.com/VidhyaES/scanova-ai-self-checkout/kiosk-service/internal/storage"
)

type memStore struct {
	m       sync.Mutex
	data    map[string][]byte
	saves   int
	loadErr error
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (s *memStore) Load(_ context.Context, key string) ([]byte, error) {
	s.m.Lock()
	defer s.m.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	data, ok := s.data[key]
	if !ok {
		return nil, storage.ErrSnapshotNotFound
	}
	return data, nil
}

func (s *memStore) Save(_ context.Context, key string, data []byte) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.data[key] = data
	return nil
}

func (s *memStore) Close() error { return nil }

func (s *memStore) saved(key string) ([]byte, bool) {
	s.m.Lock()
	defer s.m.Unlock()
	data, ok := s.data[key]
	return data, ok
}
