package session

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/zhouzirui/todos/internal/model/todo"
)

const idKey = "sid"

// MemoryStore keeps session state in process memory; the cookie only carries the session id.
// Concurrent requests for one session are last-write-wins.
type MemoryStore struct {
	name    string
	cookies *sessions.CookieStore

	mu     sync.RWMutex
	states map[string]*todo.State
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(opts Options) *MemoryStore {
	return &MemoryStore{
		name:    opts.Name,
		cookies: newCookieStore(opts),
		states:  make(map[string]*todo.State),
	}
}

// Load returns a copy of the state stored for the request's session id.
func (m *MemoryStore) Load(r *http.Request) (*Session, error) {
	raw, err := getRaw(m.cookies, r, m.name)
	if err != nil {
		return nil, err
	}

	state := todo.NewState()
	if sid, ok := raw.Values[idKey].(string); ok {
		m.mu.RLock()
		if stored, found := m.states[sid]; found {
			state = stored.Clone()
		}
		m.mu.RUnlock()
	}

	return &Session{State: state, raw: raw}, nil
}

// Save stores a copy of the state, assigning a session id on first use.
func (m *MemoryStore) Save(w http.ResponseWriter, r *http.Request, s *Session) error {
	sid, _ := s.raw.Values[idKey].(string)
	if sid == "" {
		sid = uuid.NewString()
		s.raw.Values[idKey] = sid
	}

	m.mu.Lock()
	m.states[sid] = s.State.Clone()
	m.mu.Unlock()

	if err := s.raw.Save(r, w); err != nil {
		return fmt.Errorf("save session cookie: %w", err)
	}
	return nil
}

// Len reports how many sessions are held.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.states)
}
