// Package storage provides functionality for persisting and retrieving
// brainstorm graphs, their posts and the registered authors.
package storage

import (
	"errors"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/graph"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

var (
	ErrGraphNotFound  = errors.New("graph not found")
	ErrGraphExists    = errors.New("graph already exists")
	ErrAuthorNotFound = errors.New("author not found")
	ErrAuthorExists   = errors.New("author already exists")
	ErrEmptyGraph     = errors.New("stored graph has no posts")
)

// GraphStore persists whole graphs by name.
type GraphStore interface {
	GraphSave(name string, g *graph.Graph) (model.GraphInfo, error)
	GraphLoad(name string) (*graph.Graph, model.GraphInfo, error)
	GraphList() ([]model.GraphInfo, error)
	GraphDelete(name string) error
	GraphExists(name string) (bool, error)
}

// PostStore applies single-post changes to a stored graph.
type PostStore interface {
	PostAdd(graphID string, rec model.PostRecord) error
	PostScoreUpdate(graphID, postID string, score int) error
}

// AuthorStore keeps the registered authors and their optional passwords.
type AuthorStore interface {
	AuthorAdd(name, password string) error
	AuthorExists(name string) (bool, error)
	AuthorGet(name string) (*model.Author, error)
	AuthorList() ([]model.AuthorInfo, error)
	AuthorAuthenticate(name, password string) (bool, error)
}

// Store is the complete persistence layer.
type Store interface {
	GraphStore
	PostStore
	AuthorStore
	Close() error
}
