package session

import (
	"context"
	"sync"

	"gamestore/internal/client/models"
)

// Record is the subset of session state that survives restarts. Loading and
// error flags are transient and never persisted.
type Record struct {
	User          *models.User      `json:"user"`
	Tokens        *models.TokenPair `json:"tokens"`
	Authenticated bool              `json:"authenticated"`
}

// Storage persists the session record under a fixed key.
//
// Implementations must return (nil, nil) from Load when no record exists and
// must treat an unreadable record the same way; a broken session on disk is
// equivalent to no session.
type Storage interface {
	Load(ctx context.Context) (*Record, error)
	Save(ctx context.Context, rec *Record) error
	Clear(ctx context.Context) error
}

// MemoryStorage keeps the record in memory only. Used by tests and by
// ephemeral runs that should not leave a session on disk.
type MemoryStorage struct {
	mu  sync.Mutex
	rec *Record
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load(_ context.Context) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec, nil
}

func (m *MemoryStorage) Save(_ context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = rec
	return nil
}

func (m *MemoryStorage) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = nil
	return nil
}
