package session

import (
	"context"
	"fmt"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/event"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/linear"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/log"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/render"
)

// Move applies a cursor movement to the selection. Moves without a target
// leave the selection where it is.
func (s *Session) Move(m render.Move) int {
	s.Selected = render.Navigate(s.Page.Lines, s.Selected, m)
	return s.Selected
}

// Select puts the selection on line i.
func (s *Session) Select(i int) error {
	if !s.Page.Selectable(i) {
		return fmt.Errorf("line %d: %w", i, ErrInvalidLine)
	}
	s.Selected = i
	return nil
}

// Reroot renders the page around the selected post. The history only grows
// when the focus actually changes.
func (s *Session) Reroot() error {
	n, err := s.SelectedNode()
	if err != nil {
		return err
	}
	push := n.Post != s.Root()
	s.logger.Info(context.Background(), "Re-rooting page", log.Fields{"from": s.Root().ID, "to": n.Post.ID})
	return s.loadPage(n.Post, push)
}

// Back renders the previous history entry. It reports false when there is
// nothing to go back to.
func (s *Session) Back() (bool, error) {
	p, ok := s.History.Back()
	if !ok {
		return false, nil
	}
	return true, s.loadPage(p, false)
}

// Forward renders the next history entry. It reports false at the newest entry.
func (s *Session) Forward() (bool, error) {
	p, ok := s.History.Forward()
	if !ok {
		return false, nil
	}
	return true, s.loadPage(p, false)
}

// AdjustSelected changes the score of the selected post by delta and
// re-renders at the same focus. Only reply lines can be scored.
func (s *Session) AdjustSelected(delta int) error {
	n, err := s.SelectedNode()
	if err != nil {
		return err
	}
	if n.Role != linear.Child {
		return fmt.Errorf("%s line: %w", n.Role, ErrNotChild)
	}
	if err := s.Graph.AdjustScore(n.Post, delta); err != nil {
		return err
	}
	post := n.Post

	s.markChanged()
	if err := s.events.Publish(event.Event{Type: event.ScoreChanged, Data: post}); err != nil {
		s.logger.Warn(context.Background(), "Score change not stored", log.Fields{"post": post.ID, "error": err})
	}
	return s.Refresh()
}
