package repository

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bitfantasy/toolcat/internal/shared/logging"
)

// SessionManager hands out named gorm sessions over one connection pool.
type SessionManager struct {
	mu       sync.Mutex
	db       *gorm.DB
	sessions map[string]*gorm.DB
	logger   *zap.Logger
}

// NewSessionManager creates a manager whose default session is db.
func NewSessionManager(db *gorm.DB, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		db:       db,
		sessions: make(map[string]*gorm.DB),
		logger:   logging.OrGlobal(logger),
	}
}

var (
	globalMu       sync.Mutex
	globalSessions *SessionManager
)

// InitSessions installs the process-wide manager. Later calls return the
// manager created first.
func InitSessions(db *gorm.DB, logger *zap.Logger) *SessionManager {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalSessions == nil {
		globalSessions = NewSessionManager(db, logger)
	}
	return globalSessions
}

// Sessions returns the process-wide manager, or nil before InitSessions.
func Sessions() *SessionManager {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalSessions
}

// GetSession returns the session registered under id, creating it on first
// use. The empty id is the default session.
func (m *SessionManager) GetSession(id string) *gorm.DB {
	if id == "" {
		return m.db
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := m.db.Session(&gorm.Session{NewDB: true})
	m.sessions[id] = s
	m.logger.Debug("session opened", zap.String("session", id))
	return s
}

// CloseSession forgets the named session. The default session lives as long
// as the pool, so CloseSession("") only logs a warning; use CloseAll instead.
func (m *SessionManager) CloseSession(id string) {
	if id == "" {
		m.logger.Warn("default session cannot be closed on its own, use CloseAll")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		delete(m.sessions, id)
		m.logger.Debug("session closed", zap.String("session", id))
	}
}

// WithSession runs fn on a named session and closes it afterwards. An empty
// id gets a generated one.
func (m *SessionManager) WithSession(id string, fn func(db *gorm.DB) error) error {
	if id == "" {
		id = uuid.NewString()
	}
	defer m.CloseSession(id)
	return fn(m.GetSession(id))
}

// Active lists the open session ids.
func (m *SessionManager) Active() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CloseAll forgets every session and closes the connection pool.
func (m *SessionManager) CloseAll() error {
	m.mu.Lock()
	m.sessions = make(map[string]*gorm.DB)
	m.mu.Unlock()

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	return sqlDB.Close()
}
