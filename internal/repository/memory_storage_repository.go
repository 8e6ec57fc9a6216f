package repository

import "sync"

// memoryStorageRepository keeps records in a map. It backs local
// development boots without a database and the service tests.
type memoryStorageRepository struct {
	mu      sync.RWMutex
	records map[string]string
}

func NewMemoryStorageRepository() StorageRepository {
	return &memoryStorageRepository{records: make(map[string]string)}
}

func (r *memoryStorageRepository) Get(key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.records[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (r *memoryStorageRepository) Set(key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[key] = value
	return nil
}

func (r *memoryStorageRepository) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, key)
	return nil
}
