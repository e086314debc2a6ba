package services

import (
	"sync"

	"github.com/go-webauthn/webauthn/webauthn"
)

// CredentialCache bridges the window between the begin and complete
// phases of a reset-mode registration, keyed by normalized email. The
// database stays authoritative; the cache only covers credentials the
// persistence layer has not caught up with yet.
type CredentialCache struct {
	mu    sync.RWMutex
	creds map[string]webauthn.Credential
}

func NewCredentialCache() *CredentialCache {
	return &CredentialCache{creds: make(map[string]webauthn.Credential)}
}

func (c *CredentialCache) Get(email string) (webauthn.Credential, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cred, ok := c.creds[email]
	return cred, ok
}

func (c *CredentialCache) Put(email string, cred webauthn.Credential) {
	c.mu.Lock()
	c.creds[email] = cred
	c.mu.Unlock()
}

func (c *CredentialCache) Remove(email string) {
	c.mu.Lock()
	delete(c.creds, email)
	c.mu.Unlock()
}
