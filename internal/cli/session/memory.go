package session

import "sync"

// MemoryStore keeps the session in process memory. Used by tests and by
// sessions that should not outlive the process.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	user  *User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *MemoryStore) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *MemoryStore) User() (*User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" || m.user == nil {
		return nil, false
	}
	u := *m.user
	return &u, true
}

func (m *MemoryStore) SetUser(u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u == nil {
		m.user = nil
		return nil
	}
	cp := *u
	m.user = &cp
	return nil
}

func (m *MemoryStore) ClearUser() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	return nil
}
