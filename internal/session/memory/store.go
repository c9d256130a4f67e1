package memory

import (
	"context"
	"sync"
	"time"

	"github.com/earl-cod3/purity-ui-rbac/internal/models"
	"github.com/earl-cod3/purity-ui-rbac/internal/session"
)

type entry struct {
	user      models.User
	expiresAt time.Time
}

// Store keeps sessions in a mutex-guarded map. A TTL of zero disables
// expiry; expired entries are dropped lazily on Lookup.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Store) Create(ctx context.Context, user models.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		token, err := session.NewToken()
		if err != nil {
			return "", err
		}
		if _, taken := s.sessions[token]; taken {
			continue
		}
		e := entry{user: user}
		if s.ttl > 0 {
			e.expiresAt = s.now().Add(s.ttl)
		}
		s.sessions[token] = e
		return token, nil
	}
}

func (s *Store) Lookup(ctx context.Context, token string) (models.User, error) {
	s.mu.RLock()
	e, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return models.User{}, session.ErrSessionNotFound
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return models.User{}, session.ErrSessionNotFound
	}
	return e.user, nil
}

func (s *Store) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
