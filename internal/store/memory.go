package store

import (
	"context"
	"sort"
	"sync"
)

// MemStore keeps everything in process memory: maps keyed by sequential
// integer id plus one monotonic counter per entity type. Nothing survives
// a restart. Fiber serves requests from multiple goroutines, so all access
// goes through a single mutex.
type MemStore struct {
	mu sync.Mutex

	users           map[int]User
	analyses        map[int]Analysis
	contactRequests map[int]ContactRequest
	sessions        map[string]Session

	nextUserID     int
	nextAnalysisID int
	nextContactID  int
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:           make(map[int]User),
		analyses:        make(map[int]Analysis),
		contactRequests: make(map[int]ContactRequest),
		sessions:        make(map[string]Session),
		nextUserID:      1,
		nextAnalysisID:  1,
		nextContactID:   1,
	}
}

func (m *MemStore) GetUser(_ context.Context, id int) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *MemStore) GetUserByUsername(_ context.Context, username string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (m *MemStore) CreateUser(_ context.Context, u User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u.ID = m.nextUserID
	m.nextUserID++
	m.users[u.ID] = u
	return u, nil
}

func (m *MemStore) CreateAnalysis(_ context.Context, a Analysis) (Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a.ID = m.nextAnalysisID
	m.nextAnalysisID++
	m.analyses[a.ID] = a
	return a, nil
}

func (m *MemStore) GetAnalysisByID(_ context.Context, id int) (Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.analyses[id]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return a, nil
}

func (m *MemStore) GetAnalysesByUserID(_ context.Context, userID int) ([]Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Analysis, 0)
	for _, a := range m.analyses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	// Map iteration order is random; ids are assigned in insertion order.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStore) CreateContactRequest(_ context.Context, r ContactRequest) (ContactRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r.ID = m.nextContactID
	m.nextContactID++
	r.Resolved = false
	m.contactRequests[r.ID] = r
	return r, nil
}

func (m *MemStore) GetContactRequests(_ context.Context) ([]ContactRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ContactRequest, 0, len(m.contactRequests))
	for _, r := range m.contactRequests {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStore) UpdateContactRequest(_ context.Context, id int, resolved bool) (ContactRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.contactRequests[id]
	if !ok {
		return ContactRequest{}, ErrNotFound
	}
	r.Resolved = resolved
	m.contactRequests[id] = r
	return r, nil
}

func (m *MemStore) CreateSession(_ context.Context, s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.ID] = s
	return nil
}

func (m *MemStore) GetSession(_ context.Context, id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (m *MemStore) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

func (m *MemStore) Counts(_ context.Context) (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Users:           len(m.users),
		Analyses:        len(m.analyses),
		ContactRequests: len(m.contactRequests),
	}, nil
}
