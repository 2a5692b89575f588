package viewer

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"chat-sentry/internal/pagination"
	"chat-sentry/internal/storage"
)

// Manager owns every live session. It enforces one open session per
// requester and expires untouched sessions after their TTL.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	byRequester map[int64]string
	now         func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		byRequester: make(map[int64]string),
		now:         time.Now,
	}
}

// Open starts a browse over the given records and returns the session
// with its first page. An empty result set is refused; the caller should
// tell the requester "no messages found" instead. If the requester
// already has an open session it is closed first.
func (m *Manager) Open(requester int64, target string, records []storage.Record, pageSize int, ttl time.Duration) (*Session, pagination.Page, error) {
	if len(records) == 0 {
		return nil, pagination.Page{}, ErrEmptyResult
	}
	// validate before touching any shared state
	firstPage, err := pagination.Paginate(records, pageSize, 0)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	if prev := m.lookupByRequester(requester); prev != nil {
		_, _ = prev.Handle(requester, Event{Kind: Close})
	}

	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		Requester: requester,
		Target:    target,
		records:   records,
		pageSize:  pageSize,
		createdAt: now,
		expiresAt: now.Add(ttl),
		open:      true,
		onClose:   m.forget,
	}
	s.timer = time.AfterFunc(ttl, s.expire)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.byRequester[requester] = s.ID
	m.mu.Unlock()

	return s, firstPage, nil
}

// Get resolves a live session by ID; nil when unknown or already
// forgotten.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Len reports how many sessions are currently tracked.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) lookupByRequester(requester int64) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byRequester[requester]
	if !ok {
		return nil
	}
	return m.sessions[id]
}

// forget drops a closed session from the tables. Runs from closeLocked,
// either on the event path or on the expiry timer goroutine.
func (m *Manager) forget(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, s.ID)
	if m.byRequester[s.Requester] == s.ID {
		delete(m.byRequester, s.Requester)
	}
}
