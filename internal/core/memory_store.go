package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-memory UserStore for tests.
// It enforces unique email and SSN like the database does, and exposes
// error fields for behavior injection.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[int64]User
	nextID int64

	SaveAllErr error
	PingErr    error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[int64]User),
		nextID: 1,
	}
}

func (m *MemoryStore) List(_ context.Context, limit, offset int) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.sorted()
	if offset >= len(all) {
		return []User{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (m *MemoryStore) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.users)), nil
}

func (m *MemoryStore) Get(_ context.Context, id int64) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (m *MemoryStore) Create(_ context.Context, u User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u.ID = 0
	if err := m.checkUnique(u, m.users); err != nil {
		return User{}, err
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return u, nil
}

func (m *MemoryStore) Update(_ context.Context, u User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[u.ID]; !ok {
		return User{}, ErrUserNotFound
	}
	if err := m.checkUnique(u, m.users); err != nil {
		return User{}, err
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *MemoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

// SaveAll applies every write to a copy and swaps it in only on success.
func (m *MemoryStore) SaveAll(_ context.Context, users []User) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveAllErr != nil {
		return nil, m.SaveAllErr
	}

	staged := make(map[int64]User, len(m.users)+len(users))
	for id, u := range m.users {
		staged[id] = u
	}
	nextID := m.nextID

	saved := make([]User, len(users))
	for i, u := range users {
		if u.ID != 0 {
			if _, ok := staged[u.ID]; !ok {
				return nil, ErrUserNotFound
			}
		} else {
			u.ID = nextID
			nextID++
		}
		if err := m.checkUnique(u, staged); err != nil {
			return nil, err
		}
		staged[u.ID] = u
		saved[i] = u
	}

	m.users = staged
	m.nextID = nextID
	return saved, nil
}

func (m *MemoryStore) Ping(_ context.Context) error {
	return m.PingErr
}

// checkUnique reports an IntegrityError if another user in set shares
// u's email or SSN.
func (m *MemoryStore) checkUnique(u User, set map[int64]User) error {
	for id, other := range set {
		if id == u.ID {
			continue
		}
		if other.Email == u.Email {
			return duplicateError("email", u.Email)
		}
		if other.Ssn == u.Ssn {
			return duplicateError("ssn", u.Ssn)
		}
	}
	return nil
}

func (m *MemoryStore) sorted() []User {
	all := make([]User, 0, len(m.users))
	for _, u := range m.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func duplicateError(column, value string) *IntegrityError {
	return &IntegrityError{
		Constraint: "users_" + column + "_key",
		Column:     column,
		Message:    fmt.Sprintf("duplicate key value violates unique constraint on %s (%s)", column, value),
	}
}
