package session

import (
	"context"
	"strings"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/event"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/log"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

// DraftReply makes the selected post the parent of the draft.
func (s *Session) DraftReply() error {
	n, err := s.SelectedNode()
	if err != nil {
		return err
	}
	s.Draft.Parent = n.Post
	return nil
}

// DraftLink makes the selected post the destination of the draft.
func (s *Session) DraftLink() error {
	n, err := s.SelectedNode()
	if err != nil {
		return err
	}
	s.Draft.Destination = n.Post
	return nil
}

// DraftClear drops both draft targets.
func (s *Session) DraftClear() {
	s.Draft = Draft{}
}

// DraftSubmit posts text under the draft targets. A leading "+" tags the
// post Canon and a leading "-" tags it Suppress. The page is re-rendered
// at the unchanged focus.
func (s *Session) DraftSubmit(text string) (*model.Post, error) {
	if s.Draft.Parent == nil {
		return nil, ErrNoDraftParent
	}

	aux := model.Neutral
	switch {
	case strings.HasPrefix(text, "+"):
		aux = model.Canon
		text = text[1:]
	case strings.HasPrefix(text, "-"):
		aux = model.Suppress
		text = text[1:]
	}

	post, err := s.Graph.AddPost(s.Draft.Parent, s.Draft.Destination, text, aux, s.Author)
	if err != nil {
		return nil, err
	}
	s.Draft = Draft{}

	s.markChanged()
	if err := s.events.Publish(event.Event{Type: event.PostAdded, Data: post}); err != nil {
		s.logger.Warn(context.Background(), "Post not stored", log.Fields{"post": post.ID, "error": err})
	}
	return post, s.Refresh()
}
