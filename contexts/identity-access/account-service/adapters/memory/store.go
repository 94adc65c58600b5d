package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"shipline/contexts/identity-access/account-service/domain/entities"
	domainerrors "shipline/contexts/identity-access/account-service/domain/errors"
	"shipline/contexts/identity-access/account-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory UserRepository used by unit tests and local runs.
// It also implements the Clock and IDGenerator ports.
type Store struct {
	mu    sync.RWMutex
	users map[string]entities.User
}

func NewStore(seed []entities.User) *Store {
	users := make(map[string]entities.User, len(seed))
	for _, item := range seed {
		users[item.UserID] = item
	}
	return &Store{users: users}
}

func (s *Store) CreateUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.UserID]; exists {
		return domainerrors.ErrInvalidUserInput
	}
	email := entities.NormalizeEmail(user.Email)
	for _, existing := range s.users {
		if entities.NormalizeEmail(existing.Email) == email {
			return domainerrors.ErrEmailTaken
		}
	}
	s.users[user.UserID] = user
	return nil
}

func (s *Store) UpdateUser(_ context.Context, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.UserID]; !exists {
		return domainerrors.ErrUserNotFound
	}
	s.users[user.UserID] = user
	return nil
}

func (s *Store) GetUser(_ context.Context, userID string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[strings.TrimSpace(userID)]
	if !exists {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	normalized := entities.NormalizeEmail(email)
	for _, user := range s.users {
		if entities.NormalizeEmail(user.Email) == normalized {
			return user, nil
		}
	}
	return entities.User{}, domainerrors.ErrUserNotFound
}

func (s *Store) ListUsers(_ context.Context, filter ports.UserFilter) (ports.UserPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	items := make([]entities.User, 0, len(s.users))
	for _, user := range s.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if filter.Active != nil && user.Active != *filter.Active {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(user.Name), search) &&
			!strings.Contains(strings.ToLower(user.Email), search) {
			continue
		}
		items = append(items, user)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	total := int64(len(items))
	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = len(items)
	}
	start := (page - 1) * limit
	if start > len(items) {
		start = len(items)
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return ports.UserPage{Items: items[start:end], Total: total}, nil
}

func (s *Store) DeleteUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[strings.TrimSpace(userID)]; !exists {
		return domainerrors.ErrUserNotFound
	}
	delete(s.users, strings.TrimSpace(userID))
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
