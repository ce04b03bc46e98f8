package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is the ephemeral server-side association of a browser to an
// authenticated employee. Never persisted; process restart signs everyone out.
type Session struct {
	ID           string
	EmployeeID   int64
	EmployeeName string
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// SessionStore is an in-memory, mutex-guarded session table with TTL expiry.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

func (st *SessionStore) Create(employeeID int64, employeeName string) *Session {
	now := time.Now()
	sess := &Session{
		ID:           uuid.NewString(),
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		CreatedAt:    now,
		ExpiresAt:    now.Add(st.ttl),
	}

	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()

	return sess
}

// Get returns the live session for id, reaping it if expired.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if sess.Expired(time.Now()) {
		st.Delete(id)
		return nil, false
	}
	return sess, true
}

func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len reports live (non-reaped) session count; used by tests.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
