// Package session holds the state of one interactive brainstorm session:
// the open graph, the rendered page with its selection, the focus history
// and the draft post, plus the command handlers operating on them.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/event"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/graph"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/linear"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/log"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/render"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/storage"
)

// DefaultTitle is the root text of the graph a session starts with.
const DefaultTitle = "-"

var (
	ErrNoSelection     = errors.New("no post selected")
	ErrNotChild        = errors.New("score can only be changed on a reply line")
	ErrNoDraftParent   = errors.New("draft has no parent, use 'post reply' first")
	ErrNoStore         = errors.New("no database configured")
	ErrNoGraphName     = errors.New("graph has no name yet")
	ErrUnsavedChanges  = errors.New("graph has unsaved changes, save first or pass --force")
	ErrInvalidLine     = errors.New("line cannot be selected")
	ErrAuthentication  = errors.New("wrong password")
	ErrUnknownOption   = errors.New("unknown view option")
	ErrInvalidArgument = errors.New("invalid argument")
)

// CommandHandler is a function type for command handlers
type CommandHandler func(*Session, model.Command) (interface{}, error)

// Draft is the post being composed: the reply target and the optional
// annotated destination.
type Draft struct {
	Parent      *model.Post
	Destination *model.Post
}

// Session represents one interactive session over a single graph.
type Session struct {
	ID           string
	Graph        *graph.Graph
	Info         model.GraphInfo
	Settings     linear.Settings
	Page         *render.Page
	Selected     int
	History      *History
	Draft        Draft
	Author       string
	Dirty        bool
	LastActivity time.Time

	store           storage.Store
	writeFailed     bool
	events          *event.EventManager
	logger          *log.Logger
	now             func() time.Time
	commandHandlers map[string]map[string]CommandHandler
}

// NewSession creates a session on a fresh graph. store may be nil, in which
// case the graph and author commands that need a database fail with ErrNoStore.
func NewSession(id string, store storage.Store, cfg *model.Config, logger *log.Logger) (*Session, error) {
	ctx := context.Background()
	logger.Info(ctx, "Creating new Session", log.Fields{"sessionID": id})

	settings, err := linear.FromView(cfg.View)
	if err != nil {
		return nil, fmt.Errorf("invalid view settings: %w", err)
	}

	s := &Session{
		ID:           id,
		Settings:     settings,
		Author:       cfg.DefaultAuthor,
		LastActivity: time.Now(),
		store:        store,
		events:       event.NewEventManager(),
		logger:       logger,
		now:          time.Now,
	}
	s.initCommandHandlers()
	s.initSubscriptions()

	if err := s.bind(graph.New(DefaultTitle, s.Author), model.GraphInfo{}); err != nil {
		return nil, err
	}

	logger.Info(ctx, "New Session created successfully", log.Fields{"sessionID": id})
	return s, nil
}

// initCommandHandlers initializes the command handlers map
func (s *Session) initCommandHandlers() {
	s.commandHandlers = map[string]map[string]CommandHandler{
		"nav":    initNavCommandHandlers(),
		"post":   initPostCommandHandlers(),
		"view":   initViewCommandHandlers(),
		"graph":  initGraphCommandHandlers(),
		"author": initAuthorCommandHandlers(),
	}
}

// CommandRun executes a command within the session context
func (s *Session) CommandRun(cmd model.Command) (interface{}, error) {
	ctx := context.Background()
	s.logger.Debug(ctx, "Running command", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation, "args": cmd.Args})
	s.LastActivity = time.Now()

	if err := ValidateCommand(cmd); err != nil {
		s.logger.Warn(ctx, "Invalid command", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation, "error": err})
		return nil, err
	}
	handler, ok := s.commandHandlers[cmd.Scope][cmd.Operation]
	if !ok {
		return nil, fmt.Errorf("%w: no handler for %s %s", ErrInvalidCommand, cmd.Scope, cmd.Operation)
	}

	result, err := handler(s, cmd)
	if err != nil {
		s.logger.Error(ctx, "Command execution failed", log.Fields{"scope": cmd.Scope, "operation": cmd.Operation, "error": err})
	}
	return result, err
}

// Events exposes the session's event manager so callers can observe changes.
func (s *Session) Events() *event.EventManager {
	return s.events
}

// SetClock replaces the time source of the session and its graph.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
	s.Graph.SetClock(now)
}

// Now returns the session's current time, used for the info column.
func (s *Session) Now() time.Time {
	return s.now()
}

// Root returns the post the page is currently rooted at.
func (s *Session) Root() *model.Post {
	return s.Page.Tree.Root.Post
}

// bind makes g the session's graph and renders it from its root post.
func (s *Session) bind(g *graph.Graph, info model.GraphInfo) error {
	g.SetClock(s.now)
	s.Graph = g
	s.Info = info
	s.writeFailed = false
	s.Draft = Draft{}
	s.Page = nil
	s.History = NewHistory(g.Root())
	return s.loadPage(g.Root(), false)
}

// loadPage re-linearizes the graph around root. When root is unchanged the
// selection follows the same path through the new view tree; otherwise the
// root line is selected. push records root in the history.
func (s *Session) loadPage(root *model.Post, push bool) error {
	var trace []linear.Step
	keep := s.Page != nil && s.Root() == root && s.Page.Selectable(s.Selected)
	if keep {
		trace = s.Page.Node(s.Selected).Trace()
	}

	tree, err := linear.Linearize(root, s.Settings)
	if err != nil {
		return err
	}
	if push {
		s.History.Push(root)
	}

	s.Page = render.Flatten(tree)
	if keep {
		s.Selected = tree.Follow(trace).LineNum
	} else {
		s.Selected = s.Page.RootLine
	}

	s.logger.Debug(context.Background(), "Page rendered", log.Fields{
		"root":     root.ID,
		"lines":    s.Page.Len(),
		"selected": s.Selected,
	})
	return nil
}

// Refresh re-renders the page at the unchanged focus, keeping the selection.
func (s *Session) Refresh() error {
	return s.loadPage(s.Root(), false)
}

// SelectedNode returns the view node on the selected line.
func (s *Session) SelectedNode() (*linear.ViewNode, error) {
	if !s.Page.Selectable(s.Selected) {
		return nil, ErrNoSelection
	}
	return s.Page.Node(s.Selected), nil
}

// markChanged flags the graph as modified. Autosave handlers clear the flag
// again once the change is stored.
func (s *Session) markChanged() {
	s.Dirty = true
}
