package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/log"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/storage"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrManagerStopped  = errors.New("session manager stopped")
)

// SessionManager owns the sessions and runs every command on a single
// executor goroutine, so each graph has exactly one writer.
type SessionManager struct {
	sessions     map[string]*Session
	mu           sync.RWMutex
	store        storage.Store
	cfg          *model.Config
	logger       *log.Logger
	commandQueue chan commandExecution
	done         chan struct{}
	stopOnce     sync.Once
}

// commandExecution represents a command to be executed in a session and
// the channel its outcome is delivered on
type commandExecution struct {
	session *Session
	command model.Command
	result  chan commandResult
}

type commandResult struct {
	value interface{}
	err   error
}

// NewSessionManager starts the command execution goroutine
func NewSessionManager(store storage.Store, cfg *model.Config, logger *log.Logger) *SessionManager {
	sm := &SessionManager{
		sessions:     make(map[string]*Session),
		store:        store,
		cfg:          cfg,
		logger:       logger,
		commandQueue: make(chan commandExecution),
		done:         make(chan struct{}),
	}
	go sm.commandExecutor()
	return sm
}

// SessionAdd creates a new session and returns its ID
func (sm *SessionManager) SessionAdd() (string, error) {
	id := uuid.New().String()
	s, err := NewSession(id, sm.store, sm.cfg, sm.logger)
	if err != nil {
		return "", err
	}

	sm.mu.Lock()
	sm.sessions[id] = s
	sm.mu.Unlock()
	return id, nil
}

// SessionGet retrieves a session by its ID
func (sm *SessionManager) SessionGet(sessionID string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[sessionID]
	return s, ok
}

// SessionDelete removes a session
func (sm *SessionManager) SessionDelete(sessionID string) {
	sm.mu.Lock()
	delete(sm.sessions, sessionID)
	sm.mu.Unlock()
}

// SessionRun executes a command for a specific session and waits for its outcome
func (sm *SessionManager) SessionRun(sessionID string, cmd model.Command) (interface{}, error) {
	s, ok := sm.SessionGet(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	result := make(chan commandResult, 1)
	select {
	case sm.commandQueue <- commandExecution{session: s, command: cmd, result: result}:
	case <-sm.done:
		return nil, ErrManagerStopped
	}

	r := <-result
	return r.value, r.err
}

// commandExecutor processes commands from the queue
func (sm *SessionManager) commandExecutor() {
	for {
		select {
		case exec := <-sm.commandQueue:
			value, err := exec.session.CommandRun(exec.command)
			exec.result <- commandResult{value: value, err: err}
		case <-sm.done:
			return
		}
	}
}

// Stop ends the executor. Commands submitted afterwards fail with ErrManagerStopped.
func (sm *SessionManager) Stop() {
	sm.stopOnce.Do(func() {
		close(sm.done)
		sm.logger.Info(context.Background(), "Session manager stopped", nil)
	})
}
