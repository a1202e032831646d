package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/config"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/log"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

func TestSessionManagerRun(t *testing.T) {
	sm := NewSessionManager(nil, config.Default(), log.NewDiscard())
	defer sm.Stop()

	id, err := sm.SessionAdd()
	require.NoError(t, err)
	s, ok := sm.SessionGet(id)
	require.True(t, ok)
	assert.Equal(t, id, s.ID)

	_, err = sm.SessionRun(id, model.Command{Scope: "post", Operation: "reply"})
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		submitted int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := sm.SessionRun(id, model.Command{Scope: "post", Operation: "submit", Args: []string{"idea"}})
			if err != nil {
				assert.ErrorIs(t, err, ErrNoDraftParent)
				return
			}
			mu.Lock()
			submitted++
			mu.Unlock()
		}()
	}
	wg.Wait()

	// the first submit clears the draft for all the others
	assert.Equal(t, 1, submitted)
	assert.Equal(t, 2, s.Graph.Len())
	assert.Len(t, s.Graph.Root().Children, 1)
}

func TestSessionManagerErrors(t *testing.T) {
	sm := NewSessionManager(nil, config.Default(), log.NewDiscard())

	_, err := sm.SessionRun("missing", model.Command{Scope: "nav", Operation: "up"})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	id, err := sm.SessionAdd()
	require.NoError(t, err)
	_, err = sm.SessionRun(id, model.Command{Scope: "nav", Operation: "jump"})
	assert.ErrorIs(t, err, ErrInvalidCommand)

	sm.SessionDelete(id)
	_, ok := sm.SessionGet(id)
	assert.False(t, ok)

	id, err = sm.SessionAdd()
	require.NoError(t, err)
	sm.Stop()
	sm.Stop()
	_, err = sm.SessionRun(id, model.Command{Scope: "nav", Operation: "up"})
	assert.ErrorIs(t, err, ErrManagerStopped)
}
