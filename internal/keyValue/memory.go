package keyValue

import "sync"

// MemoryStore keeps everything in a map, tests substitute it for the sql and
// redis stores.
type MemoryStore struct {
	mutex   sync.RWMutex
	hashmap map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{hashmap: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.hashmap[key], nil
}

func (s *MemoryStore) Set(key string, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.hashmap[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.hashmap, key)
	return nil
}
