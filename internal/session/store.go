package session

import (
	"sync"

	"github.com/desertthunder/chorus/internal/models"
	"golang.org/x/oauth2"
)

// Store persists and retrieves session artifacts. It is a byte-for-byte
// accessor: no network, no validation. Implementations must be safe for
// concurrent readers; the [Controller] is the only writer after load.
//
// Store also satisfies api.CredentialSource so the request gateway can read
// credentials without importing this package's controller.
type Store interface {
	ImpersonatedUser() (int64, bool)
	SetImpersonatedUser(id int64)
	ClearImpersonatedUser()

	Tokens() *oauth2.Token
	SetTokens(tok *oauth2.Token)

	CachedProfile() *models.User
	SetCachedProfile(profile *models.User)

	// AccessToken exposes the bearer token for the gateway.
	AccessToken() (string, bool)

	// ClearAll wipes every artifact: impersonated id, token pair, profile.
	ClearAll()
}

// MemoryStore keeps session artifacts for the lifetime of one process run,
// matching the tab-scoped storage of the original client. Zero value is
// usable.
type MemoryStore struct {
	mu      sync.RWMutex
	userID  int64
	hasUser bool
	tokens  *oauth2.Token
	profile *models.User
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ImpersonatedUser() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID, s.hasUser
}

func (s *MemoryStore) SetImpersonatedUser(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = id
	s.hasUser = true
}

func (s *MemoryStore) ClearImpersonatedUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = 0
	s.hasUser = false
}

func (s *MemoryStore) Tokens() *oauth2.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens
}

func (s *MemoryStore) SetTokens(tok *oauth2.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = tok
}

func (s *MemoryStore) CachedProfile() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *MemoryStore) SetCachedProfile(profile *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
}

func (s *MemoryStore) AccessToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tokens == nil || s.tokens.AccessToken == "" {
		return "", false
	}
	return s.tokens.AccessToken, true
}

func (s *MemoryStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = 0
	s.hasUser = false
	s.tokens = nil
	s.profile = nil
}
