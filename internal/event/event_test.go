package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishRunsHandlersInOrder(t *testing.T) {
	em := NewEventManager()
	var got []string

	em.Subscribe(PostAdded, func(e Event) error {
		got = append(got, "first:"+e.Data.(string))
		return nil
	})
	em.Subscribe(PostAdded, func(e Event) error {
		got = append(got, "second:"+e.Data.(string))
		return nil
	})
	em.Subscribe(ScoreChanged, func(Event) error {
		got = append(got, "wrong")
		return nil
	})

	require.NoError(t, em.Publish(Event{Type: PostAdded, Data: "X1"}))
	assert.Equal(t, []string{"first:X1", "second:X1"}, got)
}

func TestPublishCombinesFailures(t *testing.T) {
	em := NewEventManager()
	boom := errors.New("boom")
	ran := 0

	em.Subscribe(GraphSaved, func(Event) error { ran++; return boom })
	em.Subscribe(GraphSaved, func(Event) error { ran++; panic("bad handler") })
	em.Subscribe(GraphSaved, func(Event) error { ran++; return nil })

	err := em.Publish(Event{Type: GraphSaved})
	require.Error(t, err)
	assert.Equal(t, 3, ran)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "panic in graph_saved handler: bad handler")
}

func TestPublishWithoutSubscribers(t *testing.T) {
	assert.NoError(t, NewEventManager().Publish(Event{Type: AuthorSelected}))
	assert.Equal(t, "event(42)", EventType(42).String())
}
