package session

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/zhouzirui/todos/internal/model/todo"
)

// ErrSessionFull is returned by Save when the state no longer fits into the session cookie.
var ErrSessionFull = errors.New("session is full")

// Session is the per-request view of a browser session.
type Session struct {
	State *todo.State
	raw   *sessions.Session
}

// Store loads and persists session state for a client.
type Store interface {
	Load(r *http.Request) (*Session, error)
	Save(w http.ResponseWriter, r *http.Request, s *Session) error
}

// Options configures the session cookie.
type Options struct {
	Name          string
	Secret        []byte
	EncryptionKey []byte
	MaxAge        int
	Secure        bool
}

func newCookieStore(opts Options) *sessions.CookieStore {
	keyPairs := [][]byte{opts.Secret}
	if len(opts.EncryptionKey) > 0 {
		keyPairs = append(keyPairs, opts.EncryptionKey)
	}

	store := sessions.NewCookieStore(keyPairs...)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   opts.MaxAge,
		Secure:   opts.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(opts.MaxAge)
	return store
}

// getRaw fetches the gorilla session. A cookie that fails to decode is replaced by a new
// session; only a store that cannot produce a session at all is an error.
func getRaw(store *sessions.CookieStore, r *http.Request, name string) (*sessions.Session, error) {
	raw, err := store.Get(r, name)
	if raw == nil {
		return nil, fmt.Errorf("get session %q: %w", name, err)
	}
	if err != nil {
		log.Printf("[session] discarding unreadable cookie: %v", err)
	}
	return raw, nil
}
