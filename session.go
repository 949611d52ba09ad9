package main

import (
	"sync"
	"time"
)

const maxSessions = 100

// SessionIdleTimeout is how long an empty session survives before the
// janitor reclaims it. Variables so tests can shorten them.
var (
	SessionIdleTimeout     = 2 * time.Minute
	SessionJanitorInterval = 10 * time.Second
)

// Session represents one world that players can join
type Session struct {
	ID   string
	Name string
	Game *Game

	mu         sync.Mutex
	lastActive time.Time
}

// MarkActive refreshes the idle timer
func (s *Session) MarkActive() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

// IdleSince returns how long the session has been idle
func (s *Session) IdleSince() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastActive)
}

// SessionManager handles creation and lookup of world sessions
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	db        *DB
	analytics *Analytics
	stop      chan struct{}
}

// NewSessionManager creates a new SessionManager and starts its janitor
func NewSessionManager(db *DB, analytics *Analytics) *SessionManager {
	sm := &SessionManager{
		sessions:  make(map[string]*Session),
		db:        db,
		analytics: analytics,
		stop:      make(chan struct{}),
	}
	go sm.janitor()
	return sm
}

// Stop terminates the janitor and all session tick loops
func (sm *SessionManager) Stop() {
	close(sm.stop)
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for id, sess := range sm.sessions {
		sess.Game.Stop()
		delete(sm.sessions, id)
	}
}

// CreateSession creates a new world session. Returns nil if the limit
// is reached or the preset is unknown.
func (sm *SessionManager) CreateSession(name string, preset WorldPreset, seed uint32) *Session {
	if preset < PresetMeadow || preset > PresetPeaks {
		return nil
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.sessions) >= maxSessions {
		return nil
	}

	id := GenerateUUID()
	game := NewGame(preset, seed, sm.db, sm.analytics)
	game.sessionID = id
	sess := &Session{
		ID:         id,
		Name:       name,
		Game:       game,
		lastActive: time.Now(),
	}
	sm.sessions[id] = sess
	go game.Run()

	if sm.analytics != nil {
		sm.analytics.Track(EvtWorldCreate, 0, id,
			jsonMeta(map[string]interface{}{"preset": int(preset), "name": name}))
		sm.analytics.SetActiveSessions(len(sm.sessions))
	}
	return sess
}

// GetSession returns a session by ID
func (sm *SessionManager) GetSession(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// RemovePlayer removes a player from a session and reclaims the
// session once it has been empty past the idle timeout.
func (sm *SessionManager) RemovePlayer(sessionID, playerID string) {
	sm.mu.RLock()
	sess, ok := sm.sessions[sessionID]
	sm.mu.RUnlock()
	if !ok {
		return
	}
	sess.Game.RemovePlayer(playerID)
	sess.MarkActive()
}

// janitor periodically reclaims sessions that stayed empty
func (sm *SessionManager) janitor() {
	ticker := time.NewTicker(SessionJanitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sm.reapIdle()
		case <-sm.stop:
			return
		}
	}
}

func (sm *SessionManager) reapIdle() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for id, sess := range sm.sessions {
		if sess.Game.PlayerCount() == 0 && sess.IdleSince() > SessionIdleTimeout {
			sess.Game.Stop()
			delete(sm.sessions, id)
		}
	}
	if sm.analytics != nil {
		sm.analytics.SetActiveSessions(len(sm.sessions))
	}
}

// ListSessions returns info about all active sessions
func (sm *SessionManager) ListSessions() []SessionInfo {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	list := make([]SessionInfo, 0, len(sm.sessions))
	for _, sess := range sm.sessions {
		list = append(list, SessionInfo{
			ID:      sess.ID,
			Name:    sess.Name,
			Preset:  int(sess.Game.Preset()),
			Players: sess.Game.PlayerCount(),
		})
	}
	return list
}

// SessionCount returns the number of live sessions
func (sm *SessionManager) SessionCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
