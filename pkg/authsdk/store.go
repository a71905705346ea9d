package authsdk

import "sync"

// Tokens is a persisted access/refresh pair. The zero value means logged
// out.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Empty reports whether the pair holds no credentials at all.
func (t Tokens) Empty() bool {
	return t.AccessToken == "" && t.RefreshToken == ""
}

// TokenStore persists a session's token pair. Load sits on the request path,
// so implementations keep it cheap; Save and Clear must be safe to call from
// concurrent goroutines.
type TokenStore interface {
	// Load returns the current pair, or the zero value when logged out.
	Load() (Tokens, error)

	// Save atomically replaces the stored pair.
	Save(Tokens) error

	// Clear wipes the stored pair.
	Clear() error

	// Subscribe registers fn to run after every observed change to the
	// stored pair, including changes made by other processes where the
	// store can see them. The returned cancel removes the subscription.
	// fn runs on the store's goroutine; keep it quick.
	Subscribe(fn func(Tokens)) (cancel func())
}

// MemoryStore keeps the token pair in process memory. It is the right choice
// for servers and tests; use FileStore when the pair must survive restarts
// or be shared between processes.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens Tokens
	subs   map[int]func(Tokens)
	nextID int
}

// NewMemoryStore creates an empty in-memory token store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: make(map[int]func(Tokens))}
}

// Load returns the current pair.
func (s *MemoryStore) Load() (Tokens, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens, nil
}

// Save replaces the stored pair and notifies subscribers.
func (s *MemoryStore) Save(t Tokens) error {
	s.mu.Lock()
	changed := s.tokens != t
	s.tokens = t
	var subs []func(Tokens)
	if changed {
		subs = snapshotSubs(s.subs)
	}
	s.mu.Unlock()

	// Notify outside the lock so subscribers can call back into the store.
	for _, fn := range subs {
		fn(t)
	}
	return nil
}

// Clear wipes the stored pair.
func (s *MemoryStore) Clear() error {
	return s.Save(Tokens{})
}

// Subscribe registers fn for change notifications.
func (s *MemoryStore) Subscribe(fn func(Tokens)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func snapshotSubs(subs map[int]func(Tokens)) []func(Tokens) {
	out := make([]func(Tokens), 0, len(subs))
	for _, fn := range subs {
		out = append(out, fn)
	}
	return out
}
