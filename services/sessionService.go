package services

import (
	"errors"
	"sync"
	"time"

	"nursethink/logger"
	"nursethink/services/chat"
	"nursethink/services/ngn"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrStaleResult means a newer request of the same kind started, or the
	// caller went away, while the model call was in flight.
	ErrStaleResult = errors.New("result discarded: a newer request superseded it")
)

// Session is one student's independent state. mu is never held across a
// model call.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	engine  *ngn.Engine
	chat    *chat.Session
	caseGen uint64
	chatGen uint64
}

func newSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		engine:    ngn.NewEngine(),
		chat:      chat.NewSession(),
	}
}

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	log      *logger.Logger
}

func NewSessionStore(log *logger.Logger) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		log:      log,
	}
}

func (s *SessionStore) Create() *Session {
	session := newSession()

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.log.Info("Successfully created session", "session_id", session.ID)
	return session
}

func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	s.log.Info("Successfully deleted session", "session_id", id)
	return nil
}

func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
