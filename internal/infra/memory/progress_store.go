package memory

import (
	"context"
	"strconv"
	"sync"

	"civiccents-service/internal/domain"
)

// ProgressStore keeps quiz attempts in memory, newest first per user. It
// backs the server when no database is configured, and tests.
type ProgressStore struct {
	mu     sync.RWMutex
	byUser map[string][]domain.QuizAttempt
	nextID int
}

func NewProgressStore() *ProgressStore {
	return &ProgressStore{byUser: make(map[string][]domain.QuizAttempt)}
}

func (s *ProgressStore) Create(_ context.Context, attempt domain.QuizAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	attempt.ID = strconv.Itoa(s.nextID)
	s.byUser[attempt.UserEmail] = append([]domain.QuizAttempt{attempt}, s.byUser[attempt.UserEmail]...)
	return nil
}

func (s *ProgressStore) ListByUser(_ context.Context, email string) ([]domain.QuizAttempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempts := s.byUser[email]
	out := make([]domain.QuizAttempt, len(attempts))
	copy(out, attempts)
	return out, nil
}

// StaticAuthProvider resolves access tokens from a fixed map, for the
// server's no-auth dev mode and tests.
type StaticAuthProvider struct {
	users map[string]domain.User
}

func NewStaticAuthProvider(users map[string]domain.User) *StaticAuthProvider {
	return &StaticAuthProvider{users: users}
}

func (p *StaticAuthProvider) Me(_ context.Context, accessToken string) (domain.User, error) {
	if user, ok := p.users[accessToken]; ok {
		return user, nil
	}
	return domain.User{}, domain.ErrUnauthenticated
}
