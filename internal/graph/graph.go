// Package graph holds the in-memory post graph: the reply tree, the
// annotation relation and the moderation counters that aggregate up the tree.
package graph

import (
	"errors"
	"fmt"
	"time"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

var (
	ErrNoParent      = errors.New("post needs a parent")
	ErrEmptyText     = errors.New("post text is empty")
	ErrUnknownPost   = errors.New("unknown post")
	ErrForeignPost   = errors.New("post belongs to another graph")
	ErrMissingRecord = errors.New("record references a post that was not inserted yet")
)

// Graph is the single-writer store of posts. Posts are kept in creation
// order and addressed by id; every pointer between posts refers back into
// this arena.
type Graph struct {
	posts   []*model.Post
	byID    map[string]*model.Post
	authors []string
	nextSeq int
	now     func() time.Time
}

// New creates a graph whose root post carries title.
func New(title, author string) *Graph {
	g := Empty()
	g.Insert(model.PostRecord{
		ID:        g.nextID(),
		Text:      title,
		Author:    author,
		Timestamp: g.now().Truncate(time.Second),
	})
	return g
}

// Empty creates a graph without any posts, to be filled by Insert.
func Empty() *Graph {
	return &Graph{
		byID: make(map[string]*model.Post),
		now:  time.Now,
	}
}

// SetClock replaces the time source used to stamp new posts.
func (g *Graph) SetClock(now func() time.Time) {
	g.now = now
}

// Root returns the first post of the graph, nil when the graph is empty.
func (g *Graph) Root() *model.Post {
	if len(g.posts) == 0 {
		return nil
	}
	return g.posts[0]
}

// Posts returns all posts in creation order.
func (g *Graph) Posts() []*model.Post {
	out := make([]*model.Post, len(g.posts))
	copy(out, g.posts)
	return out
}

// Len returns the number of posts.
func (g *Graph) Len() int {
	return len(g.posts)
}

// Get looks a post up by id.
func (g *Graph) Get(id string) (*model.Post, bool) {
	p, ok := g.byID[id]
	return p, ok
}

// Authors returns the distinct non-empty authors in first-seen order.
func (g *Graph) Authors() []string {
	out := make([]string, len(g.authors))
	copy(out, g.authors)
	return out
}

// Contains reports whether p is a post of this graph.
func (g *Graph) Contains(p *model.Post) bool {
	if p == nil {
		return false
	}
	return g.byID[p.ID] == p
}

// AddPost creates a new post replying to parent and optionally annotating
// destination. Tagged posts propagate their moderation signal upward.
func (g *Graph) AddPost(parent, destination *model.Post, text string, aux model.Auxiliary, author string) (*model.Post, error) {
	if parent == nil {
		return nil, ErrNoParent
	}
	if text == "" {
		return nil, ErrEmptyText
	}
	if !g.Contains(parent) {
		return nil, fmt.Errorf("parent %s: %w", parent.ID, ErrForeignPost)
	}
	if destination != nil && !g.Contains(destination) {
		return nil, fmt.Errorf("destination %s: %w", destination.ID, ErrForeignPost)
	}

	rec := model.PostRecord{
		ID:        g.nextID(),
		Parent:    parent.ID,
		Text:      text,
		Auxiliary: aux,
		Author:    author,
		Timestamp: g.now().Truncate(time.Second),
	}
	if destination != nil {
		rec.Destination = destination.ID
	}
	return g.Insert(rec), nil
}

// Insert adds a post from its flat record, resolving parent and destination
// ids against posts inserted earlier. Loaders replay records in creation
// order so the moderation counters are rebuilt exactly as they were.
//
// Inserting an id twice is a programming error and panics.
func (g *Graph) Insert(rec model.PostRecord) *model.Post {
	if _, dup := g.byID[rec.ID]; dup {
		panic(fmt.Sprintf("graph: duplicate post id %q", rec.ID))
	}

	var parent, destination *model.Post
	if rec.Parent != "" {
		parent = g.mustResolve(rec.Parent)
	}
	if rec.Destination != "" {
		destination = g.mustResolve(rec.Destination)
	}

	p := &model.Post{
		ID:          rec.ID,
		Text:        rec.Text,
		Score:       rec.Score,
		Visibility:  model.Visibility(rec.Score),
		Auxiliary:   rec.Auxiliary,
		Parent:      parent,
		Destination: destination,
		Author:      rec.Author,
		Timestamp:   rec.Timestamp,
	}

	if parent != nil {
		parent.Children = append(parent.Children, p)
		if p.Auxiliary != model.Neutral {
			p.SuppressScore = -1
			propagate(parent, p.Auxiliary, true)
		}
	}
	if destination != nil {
		destination.Sources = append(destination.Sources, p)
	}

	g.posts = append(g.posts, p)
	g.byID[p.ID] = p
	if p.Author != "" && !g.hasAuthor(p.Author) {
		g.authors = append(g.authors, p.Author)
	}
	return p
}

// Validate checks that a record could be inserted without violating the
// graph invariants. Loaders call it before Insert to reject malformed input.
func (g *Graph) Validate(rec model.PostRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("record without id: %w", ErrUnknownPost)
	}
	if _, dup := g.byID[rec.ID]; dup {
		return fmt.Errorf("duplicate post id %q", rec.ID)
	}
	if rec.Parent != "" {
		if _, ok := g.byID[rec.Parent]; !ok {
			return fmt.Errorf("parent %q of %q: %w", rec.Parent, rec.ID, ErrMissingRecord)
		}
	}
	if rec.Destination != "" {
		if _, ok := g.byID[rec.Destination]; !ok {
			return fmt.Errorf("destination %q of %q: %w", rec.Destination, rec.ID, ErrMissingRecord)
		}
	}
	return nil
}

// AdjustScore adds delta to the post's score. Callers re-linearize afterwards.
func (g *Graph) AdjustScore(p *model.Post, delta int) error {
	if !g.Contains(p) {
		return ErrUnknownPost
	}
	p.AddScore(delta)
	return nil
}

// Records flattens the graph into records in creation order.
func (g *Graph) Records() []model.PostRecord {
	out := make([]model.PostRecord, 0, len(g.posts))
	for _, p := range g.posts {
		out = append(out, p.Record())
	}
	return out
}

func (g *Graph) mustResolve(id string) *model.Post {
	p, ok := g.byID[id]
	if !ok {
		panic(fmt.Sprintf("graph: record references unknown post %q", id))
	}
	return p
}

func (g *Graph) hasAuthor(author string) bool {
	for _, a := range g.authors {
		if a == author {
			return true
		}
	}
	return false
}

func (g *Graph) nextID() string {
	if g.nextSeq < len(g.posts) {
		g.nextSeq = len(g.posts)
	}
	for {
		id := fmt.Sprintf("X%d", g.nextSeq)
		g.nextSeq++
		if _, taken := g.byID[id]; !taken {
			return id
		}
	}
}
