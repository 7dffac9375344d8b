package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrSessionNotFound сессия не найдена или истекла
	ErrSessionNotFound = errors.New("session.store: session not found")

	// ErrVersionConflict сессия изменена параллельным запросом
	ErrVersionConflict = errors.New("session.store: session was modified concurrently")
)

// Session сессия мастера записи
type Session struct {
	ID        string
	OwnerID   string
	Selection *domain.BookingSelection
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Session) clone() *Session {
	c := *s
	c.Selection = s.Selection.Clone()
	return &c
}

// Store потокобезопасное хранилище сессий в памяти с TTL.
// Get возвращает копию; изменения сохраняются через Save с проверкой версии.
type Store struct {
	mu  sync.RWMutex
	m   map[string]*Session
	ttl time.Duration
	now func() time.Time
}

// NewStore создает хранилище; ttl <= 0 - без истечения
func NewStore(ttl time.Duration) *Store {
	return &Store{
		m:   make(map[string]*Session),
		ttl: ttl,
		now: time.Now,
	}
}

// Create создает пустую сессию владельца
func (s *Store) Create(ownerID string) *Session {
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Selection: &domain.BookingSelection{},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.m[sess.ID] = sess
	s.mu.Unlock()

	return sess.clone()
}

// Get возвращает копию сессии
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.m[id]
	if !ok || s.expired(sess) {
		return nil, ErrSessionNotFound
	}
	return sess.clone(), nil
}

// Save сохраняет сессию, если с момента Get её никто не менял
func (s *Store) Save(sess *Session) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.m[sess.ID]
	if !ok || s.expired(current) {
		return nil, ErrSessionNotFound
	}
	if current.Version != sess.Version {
		return nil, ErrVersionConflict
	}

	saved := sess.clone()
	saved.Version++
	saved.UpdatedAt = s.now()
	s.m[sess.ID] = saved

	return saved.clone(), nil
}

// Delete удаляет сессию
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()
}

// PurgeExpired удаляет истекшие сессии и возвращает их количество
func (s *Store) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, sess := range s.m {
		if s.expired(sess) {
			delete(s.m, id)
			purged++
		}
	}
	return purged
}

// RunJanitor периодически чистит истекшие сессии до закрытия stopCh
func (s *Store) RunJanitor(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.PurgeExpired()
		case <-stopCh:
			return
		}
	}
}

func (s *Store) expired(sess *Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.UpdatedAt) > s.ttl
}
