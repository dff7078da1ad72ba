package storage

import (
	"context"
	"sync"

	"github.com/aliskhannn/ek-phonics-bot/internal/domain/entities"
)

// QuizStorage provides in-memory storage for quiz sessions by session ID.
type QuizStorage struct {
	mu       sync.RWMutex
	sessions map[string]*entities.QuizSession
	active   map[int64]string // chat ID -> session ID
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		sessions: make(map[string]*entities.QuizSession),
		active:   make(map[int64]string),
	}
}

// Store saves a session and makes it the active one of its chat.
// A previously active session of the chat is dropped.
func (s *QuizStorage) Store(_ context.Context, session *entities.QuizSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.active[session.ChatID]; ok && prev != session.ID {
		delete(s.sessions, prev)
	}
	s.sessions[session.ID] = cloneSession(session)
	s.active[session.ChatID] = session.ID
	return nil
}

// Get retrieves a session by ID.
func (s *QuizStorage) Get(_ context.Context, sessionID string) (*entities.QuizSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	return cloneSession(session), nil
}

// GetActive retrieves the active session of a chat.
func (s *QuizStorage) GetActive(_ context.Context, chatID int64) (*entities.QuizSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.active[chatID]
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	session, ok := s.sessions[id]
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	return cloneSession(session), nil
}

// Delete removes a session.
func (s *QuizStorage) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	delete(s.sessions, sessionID)
	if s.active[session.ChatID] == sessionID {
		delete(s.active, session.ChatID)
	}
	return nil
}

// cloneSession copies the mutable parts of a session. Questions are immutable and shared.
func cloneSession(s *entities.QuizSession) *entities.QuizSession {
	c := *s
	if s.Selected != nil {
		sel := *s.Selected
		c.Selected = &sel
	}
	if s.CompletedAt != nil {
		at := *s.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}
