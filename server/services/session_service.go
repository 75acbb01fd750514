package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"erpviz/dataset"
	apperrors "erpviz/server/errors"
)

// Session holds one loaded dataset and its derivation cache. The dataset is
// immutable once loaded; reloading replaces it wholesale and starts a new
// generation, which invalidates every cached derivation.
type Session struct {
	ID string

	mu         sync.Mutex
	dataset    *dataset.Dataset
	generation uint64
	cache      map[uint64]interface{}
	lastAccess time.Time
	createdAt  time.Time
}

// Dataset returns the current dataset with its generation counter.
func (s *Session) Dataset() (*dataset.Dataset, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	return s.dataset, s.generation
}

// cached returns a previously derived value for the key, if the generation
// still matches.
func (s *Session) cached(generation, key uint64) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return nil, false
	}
	v, ok := s.cache[key]
	return v, ok
}

// store records a derived value unless the dataset was replaced meanwhile.
func (s *Session) store(generation, key uint64, v interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return
	}
	s.cache[key] = v
}

// replace swaps in a freshly loaded dataset and clears the cache.
func (s *Session) replace(ds *dataset.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = ds
	s.generation++
	s.cache = make(map[uint64]interface{})
	s.lastAccess = time.Now()
}

// SessionService keeps the in-process sessions. No state crosses session
// boundaries and nothing is persisted; every session starts from a fresh load.
type SessionService struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	maxSessions int
}

// NewSessionService creates a session registry bounded to maxSessions
// concurrently held datasets.
func NewSessionService(maxSessions int) *SessionService {
	if maxSessions <= 0 {
		maxSessions = 64
	}
	return &SessionService{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
	}
}

// Create registers a new session around a loaded dataset, evicting the least
// recently used session when over capacity.
func (s *SessionService) Create(ds *dataset.Dataset) *Session {
	sess := &Session{
		ID:         uuid.New().String(),
		dataset:    ds,
		cache:      make(map[uint64]interface{}),
		createdAt:  time.Now(),
		lastAccess: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.sessions) >= s.maxSessions {
		s.evictOldestLocked()
	}
	s.sessions[sess.ID] = sess
	return sess
}

func (s *SessionService) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, sess := range s.sessions {
		sess.mu.Lock()
		last := sess.lastAccess
		sess.mu.Unlock()
		if oldestID == "" || last.Before(oldest) {
			oldestID = id
			oldest = last
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}

// Get returns the session or a 404 application error.
func (s *SessionService) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewNotFoundError("session not found", nil)
	}
	return sess, nil
}

// Replace reloads a session with a new dataset, invalidating its cache.
func (s *SessionService) Replace(id string, ds *dataset.Dataset) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}
	sess.replace(ds)
	return nil
}

// Count returns the number of live sessions.
func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
