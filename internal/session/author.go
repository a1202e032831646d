package session

import (
	"fmt"
	"sort"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/event"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

// AuthorAdd registers an author, protected when a password is given.
func (s *Session) AuthorAdd(name, password string) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	return s.store.AuthorAdd(name, password)
}

// AuthorSelect makes name the author of new posts. Registered authors with
// a password must be authenticated; unregistered names are accepted as is.
func (s *Session) AuthorSelect(name, password string) error {
	if name == "" {
		return fmt.Errorf("%w: author name is empty", ErrInvalidArgument)
	}
	if s.store != nil {
		ok, err := s.store.AuthorAuthenticate(name, password)
		if err != nil {
			return err
		}
		if !ok {
			exists, err := s.store.AuthorExists(name)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("author '%s': %w", name, ErrAuthentication)
			}
		}
	}
	s.Author = name
	s.publish(event.AuthorSelected, name)
	return nil
}

// AuthorList returns the registered authors together with the authors of
// the open graph, ordered by name.
func (s *Session) AuthorList() ([]model.AuthorInfo, error) {
	var authors []model.AuthorInfo
	known := make(map[string]bool)
	if s.store != nil {
		registered, err := s.store.AuthorList()
		if err != nil {
			return nil, err
		}
		for _, a := range registered {
			known[a.Name] = true
		}
		authors = append(authors, registered...)
	}
	for _, name := range s.Graph.Authors() {
		if !known[name] {
			known[name] = true
			authors = append(authors, model.AuthorInfo{Name: name})
		}
	}
	sort.SliceStable(authors, func(i, j int) bool { return authors[i].Name < authors[j].Name })
	return authors, nil
}
