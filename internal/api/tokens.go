package api

import (
	"sync"

	"github.com/google/uuid"
)

// tokenStore maps bearer tokens to account ids. Tokens live in memory and
// end with the process.
type tokenStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func newTokenStore() *tokenStore {
	return &tokenStore{tokens: make(map[string]string)}
}

func (t *tokenStore) issue(userID string) string {
	token := uuid.NewString()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tokens[token] = userID
	return token
}

func (t *tokenStore) lookup(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.tokens[token]
	return id, ok
}

func (t *tokenStore) revoke(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.tokens, token)
}
