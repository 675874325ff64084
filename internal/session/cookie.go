package session

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/zhouzirui/todos/internal/model/todo"
)

const (
	stateKey = "state"

	// Browsers drop cookies larger than this.
	maxCookieLength = 4096
)

// CookieStore keeps the whole session state inside a signed cookie.
type CookieStore struct {
	name    string
	cookies *sessions.CookieStore
}

// NewCookieStore creates a CookieStore.
func NewCookieStore(opts Options) *CookieStore {
	cookies := newCookieStore(opts)
	// Length is checked in Save so an oversized state maps to ErrSessionFull.
	for _, codec := range cookies.Codecs {
		if sc, ok := codec.(*securecookie.SecureCookie); ok {
			sc.MaxLength(0)
		}
	}
	return &CookieStore{name: opts.Name, cookies: cookies}
}

// Load decodes the state carried by the request cookie. An unreadable cookie yields an empty state.
func (c *CookieStore) Load(r *http.Request) (*Session, error) {
	raw, err := getRaw(c.cookies, r, c.name)
	if err != nil {
		return nil, err
	}

	state := todo.NewState()
	if data, ok := raw.Values[stateKey].(string); ok {
		if err := json.Unmarshal([]byte(data), state); err != nil {
			log.Printf("[session] discarding malformed state: %v", err)
			state = todo.NewState()
		}
	}

	return &Session{State: state, raw: raw}, nil
}

// Save encodes the state back into the response cookie. When the encoded cookie would exceed
// the browser limit nothing is written and ErrSessionFull is returned; the previously saved
// state stays in place.
func (c *CookieStore) Save(w http.ResponseWriter, r *http.Request, s *Session) error {
	data, err := json.Marshal(s.State)
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}

	values := map[interface{}]interface{}{stateKey: string(data)}
	encoded, err := securecookie.EncodeMulti(c.name, values, c.cookies.Codecs...)
	if err != nil {
		return fmt.Errorf("sign session cookie: %w", err)
	}
	if len(encoded) > maxCookieLength {
		return fmt.Errorf("%w: encoded state is %d bytes", ErrSessionFull, len(encoded))
	}

	s.raw.Values[stateKey] = string(data)
	http.SetCookie(w, sessions.NewCookie(c.name, encoded, s.raw.Options))
	return nil
}
