package game

import (
	"sync"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// SessionManager manages active game sessions
type SessionManager struct {
	sessions map[string]*Session // gameID → Session
	searcher Searcher
	logger   zerolog.Logger
	mu       sync.RWMutex
}

func NewSessionManager(searcher Searcher, logger zerolog.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		searcher: searcher,
		logger:   logger,
	}
}

func (sm *SessionManager) CreateSession(opts SessionOptions) *Session {
	session := NewSession(opts, sm.searcher, sm.logger)

	sm.mu.Lock()
	sm.sessions[session.GameID] = session
	sm.mu.Unlock()

	sm.logger.Info().
		Str("component", "session_manager").
		Str("game_id", session.GameID).
		Str("difficulty", string(session.Difficulty)).
		Int("depth", session.Depth).
		Bool("human_first", opts.HumanFirst).
		Msg("session created")
	return session
}

func (sm *SessionManager) GetSession(gameID string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	session, ok := sm.sessions[gameID]
	return session, ok
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, ok := sm.sessions[gameID]; !ok {
		return errors.Wrapf(domain.ErrNoSession, "game %s", gameID)
	}
	delete(sm.sessions, gameID)
	sm.logger.Info().Str("component", "session_manager").Str("game_id", gameID).Msg("session removed")
	return nil
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// CleanupOldSessions drops finished sessions older than finishedMaxAge and
// unfinished ones older than activeMaxAge. It returns how many were removed.
func (sm *SessionManager) CleanupOldSessions(finishedMaxAge, activeMaxAge time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := time.Now()
	for gameID, session := range sm.sessions {
		if session.expired(now, finishedMaxAge, activeMaxAge) {
			delete(sm.sessions, gameID)
			count++
		}
	}

	if count > 0 {
		sm.logger.Info().Str("component", "session_manager").Int("removed", count).Msg("memory cleanup")
	}
	return count
}
