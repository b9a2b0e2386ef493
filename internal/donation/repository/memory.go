package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/donation-inventory/api/internal/donation"
)

// MemoryRepo is an in-memory store used by unit tests and as the fallback
// when no database is configured. Ids grow monotonically and are never reused.
type MemoryRepo struct {
	mu     sync.RWMutex
	store  map[int64]*donation.Donation
	nextID int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[int64]*donation.Donation)}
}

func (m *MemoryRepo) Name() string { return "memory" }

func (m *MemoryRepo) Session(ctx context.Context) (Session, error) {
	return memorySession{m}, nil
}

func (m *MemoryRepo) Ping(ctx context.Context) error { return nil }

func (m *MemoryRepo) Close(ctx context.Context) error { return nil }

func (m *MemoryRepo) List(ctx context.Context) ([]*donation.Donation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*donation.Donation, 0, len(m.store))
	for _, d := range m.store {
		out = append(out, d.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryRepo) Get(ctx context.Context, id int64) (*donation.Donation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[id]; ok {
		return d.Clone(), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) Create(ctx context.Context, d *donation.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	d.ID = m.nextID
	m.store[d.ID] = d.Clone()
	return nil
}

func (m *MemoryRepo) Save(ctx context.Context, d *donation.Donation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[d.ID]; !ok {
		return ErrNotFound
	}
	m.store[d.ID] = d.Clone()
	return nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

type memorySession struct {
	*MemoryRepo
}

func (memorySession) Close() {}
