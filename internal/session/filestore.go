package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/chorus/internal/models"
	"github.com/desertthunder/chorus/internal/shared"
	"golang.org/x/oauth2"
)

// fileSession is the on-disk shape of a persisted session.
type fileSession struct {
	ImpersonatedUser *int64        `json:"impersonated_user,omitempty"`
	Tokens           *oauth2.Token `json:"tokens,omitempty"`
	Profile          *models.User  `json:"profile,omitempty"`
}

// FileStore persists session artifacts as a 0600 JSON file so CLI commands
// can share a session across invocations. Mutations are written through
// immediately; write failures are logged, never surfaced, because session
// clearing must not be blocked by storage trouble.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	logger *log.Logger
	data   fileSession
}

// OpenFileStore loads (or initializes) a file-backed store at path.
func OpenFileStore(path string, logger *log.Logger) (*FileStore, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	s := &FileStore{path: path, logger: logger}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		// A corrupt session file is treated as no session.
		logger.Warnf("discarding unreadable session file %s: %v", path, err)
		s.data = fileSession{}
	}

	return s, nil
}

// save writes the session file under the held lock.
func (s *FileStore) save() {
	raw, err := json.Marshal(s.data)
	if err != nil {
		s.logger.Warnf("failed to encode session: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		s.logger.Warnf("failed to create session directory: %v", err)
		return
	}
	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		s.logger.Warnf("failed to write session file: %v", err)
	}
}

func (s *FileStore) ImpersonatedUser() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.ImpersonatedUser == nil {
		return 0, false
	}
	return *s.data.ImpersonatedUser, true
}

func (s *FileStore) SetImpersonatedUser(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.ImpersonatedUser = &id
	s.save()
}

func (s *FileStore) ClearImpersonatedUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.ImpersonatedUser = nil
	s.save()
}

func (s *FileStore) Tokens() *oauth2.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Tokens
}

func (s *FileStore) SetTokens(tok *oauth2.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Tokens = tok
	s.save()
}

func (s *FileStore) CachedProfile() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Profile
}

func (s *FileStore) SetCachedProfile(profile *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Profile = profile
	s.save()
}

func (s *FileStore) AccessToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.Tokens == nil || s.data.Tokens.AccessToken == "" {
		return "", false
	}
	return s.data.Tokens.AccessToken, true
}

func (s *FileStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = fileSession{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Warnf("failed to remove session file: %v", err)
	}
}
