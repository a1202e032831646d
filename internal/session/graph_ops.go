package session

import (
	"context"
	"fmt"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/event"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/graph"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/log"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/storage"
)

// initSubscriptions wires the autosave of a graph bound to the store and
// the logging of session changes.
func (s *Session) initSubscriptions() {
	s.events.Subscribe(event.PostAdded, func(e event.Event) error {
		post := e.Data.(*model.Post)
		return s.writeThrough(func() error {
			return s.store.PostAdd(s.Info.ID, post.Record())
		})
	})
	s.events.Subscribe(event.ScoreChanged, func(e event.Event) error {
		post := e.Data.(*model.Post)
		return s.writeThrough(func() error {
			return s.store.PostScoreUpdate(s.Info.ID, post.ID, post.Score)
		})
	})

	ctx := context.Background()
	for _, t := range []event.EventType{event.GraphOpened, event.GraphSaved, event.SettingsChanged, event.AuthorSelected} {
		s.events.Subscribe(t, func(e event.Event) error {
			s.logger.Info(ctx, "Session changed", log.Fields{"sessionID": s.ID, "event": e.Type.String(), "data": e.Data})
			return nil
		})
	}
}

// writeThrough persists one change of a stored graph. After a failed write
// the stored copy lags behind, so later changes are kept in memory only and
// the session stays dirty until a full GraphSave.
func (s *Session) writeThrough(write func() error) error {
	if s.store == nil || s.Info.ID == "" || s.writeFailed {
		return nil
	}
	if err := write(); err != nil {
		s.writeFailed = true
		return fmt.Errorf("autosave of graph '%s' stopped: %w", s.Info.Name, err)
	}
	s.Dirty = false
	return nil
}

func (s *Session) requireStore() error {
	if s.store == nil {
		return ErrNoStore
	}
	return nil
}

func (s *Session) checkUnsaved(force bool) error {
	if s.Dirty && !force {
		return ErrUnsavedChanges
	}
	return nil
}

// GraphNew starts a fresh, unnamed graph whose root post carries title.
func (s *Session) GraphNew(title string, force bool) error {
	if err := s.checkUnsaved(force); err != nil {
		return err
	}
	if title == "" {
		title = DefaultTitle
	}
	if err := s.bind(graph.New(title, s.Author), model.GraphInfo{}); err != nil {
		return err
	}
	s.Dirty = true
	s.publish(event.GraphOpened, title)
	return nil
}

// GraphOpen loads a stored graph and binds the session to it.
func (s *Session) GraphOpen(name string, force bool) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	if err := s.checkUnsaved(force); err != nil {
		return err
	}
	g, info, err := s.store.GraphLoad(name)
	if err != nil {
		return err
	}
	if err := s.bind(g, info); err != nil {
		return err
	}
	s.Dirty = false
	s.publish(event.GraphOpened, name)
	return nil
}

// GraphSave stores the whole graph under name, or under the bound name when
// name is empty, and binds the session to the stored copy.
func (s *Session) GraphSave(name string) (model.GraphInfo, error) {
	if err := s.requireStore(); err != nil {
		return model.GraphInfo{}, err
	}
	if name == "" {
		name = s.Info.Name
	}
	if name == "" {
		return model.GraphInfo{}, ErrNoGraphName
	}
	info, err := s.store.GraphSave(name, s.Graph)
	if err != nil {
		return model.GraphInfo{}, err
	}
	s.Info = info
	s.Dirty = false
	s.writeFailed = false
	s.publish(event.GraphSaved, name)
	return info, nil
}

// GraphList returns every stored graph.
func (s *Session) GraphList() ([]model.GraphInfo, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	return s.store.GraphList()
}

// GraphDelete removes a stored graph. Deleting the bound graph keeps it
// open in memory but unbinds it, so it counts as unsaved again.
func (s *Session) GraphDelete(name string) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	if err := s.store.GraphDelete(name); err != nil {
		return err
	}
	if s.Info.Name == name {
		s.Info = model.GraphInfo{Name: name}
		s.Dirty = true
	}
	return nil
}

// GraphImport reads a graph from a file. The imported graph is named after
// the file contents but not stored until saved.
func (s *Session) GraphImport(filename, format string, force bool) error {
	if err := s.checkUnsaved(force); err != nil {
		return err
	}
	if format == "" {
		format = storage.FormatFromPath(filename)
	}
	g, name, err := storage.FileImport(filename, format)
	if err != nil {
		return err
	}
	if err := s.bind(g, model.GraphInfo{Name: name, PostCount: g.Len()}); err != nil {
		return err
	}
	s.Dirty = true
	s.publish(event.GraphOpened, filename)
	return nil
}

// GraphExport writes the open graph to a file.
func (s *Session) GraphExport(filename, format string) error {
	if format == "" {
		format = storage.FormatFromPath(filename)
	}
	if err := storage.FileExport(s.Graph, s.Info.Name, filename, format); err != nil {
		return fmt.Errorf("failed to export graph: %w", err)
	}
	return nil
}

func (s *Session) publish(t event.EventType, data interface{}) {
	if err := s.events.Publish(event.Event{Type: t, Data: data}); err != nil {
		s.logger.Warn(context.Background(), "Event handler failed", log.Fields{"event": t.String(), "error": err})
	}
}
