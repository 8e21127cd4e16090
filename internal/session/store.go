// Package session implements the mock login contract: any non-empty
// email/password pair succeeds, and the resulting record lives only for
// the lifetime of the process. This is explicitly not a security
// boundary.
package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"taskboard/internal/kvstore"
	"taskboard/internal/logger"
	"taskboard/internal/models"
)

const userKey = "user"

type Store struct {
	mtx sync.Mutex
	kv  kvstore.Store
}

func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

// Login records {email, loginTime: now} and returns true unless either
// credential is empty. No registry is consulted.
func (s *Store) Login(email, password string) bool {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return false
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	record := models.Session{
		Email:     email,
		LoginTime: time.Now(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		logger.Error("Session: failed to serialize record", err)
		return false
	}
	if err := s.kv.Set(context.Background(), userKey, data); err != nil {
		logger.Error("Session: failed to store record", err)
		return false
	}
	return true
}

// Logout clears the session record unconditionally. Idempotent.
func (s *Store) Logout() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.kv.Delete(context.Background(), userKey); err != nil {
		logger.Warn("Session: failed to clear record")
	}
}

func (s *Store) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

// CurrentUser returns the session record, or nil when absent. A record
// that fails to parse is treated as absent.
func (s *Store) CurrentUser() *models.Session {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	data, ok, err := s.kv.Get(context.Background(), userKey)
	if err != nil || !ok {
		return nil
	}

	var record models.Session
	if err := json.Unmarshal(data, &record); err != nil {
		logger.Warn("Session: malformed record, clearing")
		s.kv.Delete(context.Background(), userKey)
		return nil
	}
	return &record
}
