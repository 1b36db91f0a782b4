package db

import "sync"

type InMemoryStorage struct {
	history map[UserID][]Lookup
	mx      sync.RWMutex
}

func (d *InMemoryStorage) SaveLookup(item Lookup) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	history := append([]Lookup{item}, d.history[item.User]...)
	if len(history) > MaxHistory {
		history = history[:MaxHistory]
	}
	d.history[item.User] = history
	return nil
}

func (d *InMemoryStorage) GetHistory(user UserID, limit int) ([]Lookup, error) {
	d.mx.RLock()
	defer d.mx.RUnlock()
	history := d.history[user]
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	result := make([]Lookup, len(history))
	copy(result, history)
	return result, nil
}

func (d *InMemoryStorage) ClearHistory(user UserID) error {
	d.mx.Lock()
	defer d.mx.Unlock()
	delete(d.history, user)
	return nil
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		history: make(map[UserID][]Lookup),
	}
}
