package service

import (
	"sync"

	"mindgate/internal/modules/session/domain"
	apperrors "mindgate/internal/platform/errors"
)

// Manager owns the single live session. All access goes through the mutex:
// the daemon ticker and IPC handlers touch the session from different
// goroutines, and Pause/Skip must observably stop accumulation before any
// side effect of theirs runs.
type Manager struct {
	mu      sync.Mutex
	current *domain.Session
}

func NewManager() *Manager {
	return &Manager{}
}

// Begin installs the session. At most one session is live at a time.
func (m *Manager) Begin(session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		return apperrors.ErrSessionExists
	}
	m.current = session
	return nil
}

// Mutate runs fn against the live session under the lock.
func (m *Manager) Mutate(fn func(*domain.Session) error) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return domain.Session{}, apperrors.ErrNoActiveSession
	}
	if err := fn(m.current); err != nil {
		return domain.Session{}, err
	}
	return *m.current, nil
}

// Snapshot returns a copy of the live session, if any.
func (m *Manager) Snapshot() (domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return domain.Session{}, false
	}
	return *m.current, true
}

// Reset tears the session down; the manager returns to idle.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}

// Live reports whether a session exists in a non-terminal state. The daemon
// runs its ticker only while this is true.
func (m *Manager) Live() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil && !m.current.State.Terminal()
}
