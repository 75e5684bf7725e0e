package oauth2client

import (
	"context"
	"sync"
)

// TokenCallback receives every TokenSet the Manager installs, letting the embedding
// application persist sessions. It runs synchronously; its error is surfaced to the
// caller that triggered the update, but the token update itself is never undone.
type TokenCallback func(ctx context.Context, tokens TokenSet) error

// tokenStore holds the Manager's current TokenSet. It is a dumb holder: all
// validity and refresh decisions live in the Manager so they can be tested against
// a trivially predictable store.
type tokenStore struct {
	mu        sync.RWMutex
	tokens    TokenSet
	present   bool
	onRefresh TokenCallback
}

func (s *tokenStore) get() (TokenSet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens, s.present
}

// set overwrites the held TokenSet and fires the persistence callback when one is
// registered. The write sticks even if the callback fails.
func (s *tokenStore) set(ctx context.Context, tokens TokenSet) error {
	s.write(tokens)
	return s.notify(ctx, tokens)
}

// write overwrites the held TokenSet without notifying. Callers that need the
// write ordered against other state (the Manager's renewal coordination) use
// write under their own lock and notify afterwards.
func (s *tokenStore) write(tokens TokenSet) {
	s.mu.Lock()
	s.tokens = tokens
	s.present = true
	s.mu.Unlock()
}

// notify fires the persistence callback for an already-written TokenSet.
func (s *tokenStore) notify(ctx context.Context, tokens TokenSet) error {
	s.mu.RLock()
	cb := s.onRefresh
	s.mu.RUnlock()

	if cb != nil {
		return cb(ctx, tokens)
	}
	return nil
}

func (s *tokenStore) clear() {
	s.mu.Lock()
	s.tokens = TokenSet{}
	s.present = false
	s.mu.Unlock()
}
