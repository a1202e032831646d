package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/config"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/graph"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/linear"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/log"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/render"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/storage"
)

var testNow = time.Date(2024, 3, 14, 9, 5, 0, 0, time.UTC)

func newTestSession(t *testing.T, store storage.Store) *Session {
	t.Helper()
	cfg := config.Default()
	cfg.DefaultAuthor = "ann"
	s, err := NewSession("test", store, cfg, log.NewDiscard())
	require.NoError(t, err)
	s.SetClock(func() time.Time { return testNow })
	return s
}

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := storage.NewSQLiteStore(t.TempDir(), "test.db")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// bindSample opens the graph A{B, C} in s.
func bindSample(t *testing.T, s *Session) (a, b, c *model.Post) {
	t.Helper()
	g := graph.New("A", "ann")
	a = g.Root()
	var err error
	b, err = g.AddPost(a, nil, "B", model.Neutral, "ann")
	require.NoError(t, err)
	c, err = g.AddPost(a, nil, "C", model.Neutral, "bob")
	require.NoError(t, err)
	require.NoError(t, s.bind(g, model.GraphInfo{}))
	return a, b, c
}

func pageTexts(p *render.Page) []string {
	out := make([]string, p.Len())
	for i := range out {
		out[i] = p.Text(i)
	}
	return out
}

func run(t *testing.T, s *Session, scope, op string, args ...string) interface{} {
	t.Helper()
	res, err := s.CommandRun(model.Command{Scope: scope, Operation: op, Args: args})
	require.NoError(t, err)
	return res
}

func TestNewSessionStartsWithDefaultGraph(t *testing.T) {
	s := newTestSession(t, nil)

	assert.Equal(t, []string{DefaultTitle}, pageTexts(s.Page))
	assert.Equal(t, 0, s.Selected)
	assert.Equal(t, "ann", s.Graph.Root().Author)
	assert.False(t, s.Dirty)
	assert.Equal(t, []*model.Post{s.Graph.Root()}, s.History.Entries())
}

func TestRerootAndHistory(t *testing.T) {
	s := newTestSession(t, nil)
	a, b, c := bindSample(t, s)
	require.Equal(t, []string{"A", ":     B", ":     C"}, pageTexts(s.Page))

	require.NoError(t, s.Select(1))
	require.NoError(t, s.Reroot())
	assert.Same(t, b, s.Root())
	assert.Equal(t, []string{":     / A", ":     :     C", "B"}, pageTexts(s.Page))
	assert.Equal(t, 2, s.Selected)
	assert.Equal(t, []*model.Post{a, b}, s.History.Entries())

	// re-rooting on the focus itself leaves the history alone
	require.NoError(t, s.Reroot())
	assert.Equal(t, 2, len(s.History.Entries()))

	moved, err := s.Back()
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Same(t, a, s.Root())
	assert.Equal(t, 0, s.Selected)
	assert.Equal(t, []*model.Post{a, b}, s.History.Entries())

	moved, err = s.Back()
	require.NoError(t, err)
	assert.False(t, moved)

	moved, err = s.Forward()
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Same(t, b, s.Root())

	// a new focus after stepping back drops the forward entries
	_, err = s.Back()
	require.NoError(t, err)
	require.NoError(t, s.Select(2))
	require.NoError(t, s.Reroot())
	assert.Equal(t, []*model.Post{a, c}, s.History.Entries())
	assert.Equal(t, 1, s.History.Index())
}

func TestAdjustSelectedKeepsSelection(t *testing.T) {
	s := newTestSession(t, nil)
	_, b, c := bindSample(t, s)

	require.NoError(t, s.Select(2))
	require.NoError(t, s.AdjustSelected(1))
	require.NoError(t, s.AdjustSelected(1))

	assert.Equal(t, 2, c.Score)
	assert.Equal(t, []string{"A", ":     C", ":     B"}, pageTexts(s.Page))
	assert.Equal(t, 1, s.Selected)
	assert.True(t, s.Dirty)

	require.NoError(t, s.Select(0))
	assert.ErrorIs(t, s.AdjustSelected(1), ErrNotChild)

	require.NoError(t, s.Select(2))
	require.NoError(t, s.Reroot())
	assert.Same(t, b, s.Root())
	require.NoError(t, s.Select(0))
	assert.ErrorIs(t, s.AdjustSelected(-1), ErrNotChild)
}

func TestDraftSubmit(t *testing.T) {
	s := newTestSession(t, nil)
	a, b, c := bindSample(t, s)

	_, err := s.DraftSubmit("orphan")
	assert.ErrorIs(t, err, ErrNoDraftParent)

	require.NoError(t, s.Select(1))
	require.NoError(t, s.DraftReply())
	require.NoError(t, s.Select(2))
	require.NoError(t, s.DraftLink())
	assert.Equal(t, Draft{Parent: b, Destination: c}, s.Draft)

	post, err := s.DraftSubmit("+claim")
	require.NoError(t, err)
	assert.Equal(t, "claim", post.Text)
	assert.Equal(t, model.Canon, post.Auxiliary)
	assert.Same(t, b, post.Parent)
	assert.Same(t, c, post.Destination)
	assert.Equal(t, "ann", post.Author)
	assert.Equal(t, testNow, post.Timestamp)
	assert.Equal(t, model.Canon, b.Formality())
	assert.Equal(t, Draft{}, s.Draft)
	assert.True(t, s.Dirty)

	// the selection stays on the same reply line
	n, err := s.SelectedNode()
	require.NoError(t, err)
	assert.Same(t, c, n.Post)
	assert.Equal(t, linear.Child, n.Role)
	assert.Same(t, a, n.Heading.Post)

	require.NoError(t, s.DraftReply())
	_, err = s.DraftSubmit("-")
	assert.ErrorIs(t, err, graph.ErrEmptyText)

	s.DraftClear()
	assert.Equal(t, Draft{}, s.Draft)
}

func TestSetOption(t *testing.T) {
	s := newTestSession(t, nil)
	bindSample(t, s)

	require.NoError(t, s.SetOption("sort_method", "newest"))
	assert.Equal(t, []string{"A", ":     C", ":     B"}, pageTexts(s.Page))

	require.NoError(t, s.SetOption("depth-threshold", "0"))
	assert.Equal(t, 0.0, s.Settings.DepthThreshold)

	before := s.Settings
	assert.ErrorIs(t, s.SetOption("direction_bias", "2"), linear.ErrInvalidSettings)
	assert.ErrorIs(t, s.SetOption("sort_method", "loudest"), ErrInvalidArgument)
	assert.ErrorIs(t, s.SetOption("show_ellipses", "maybe"), ErrInvalidArgument)
	assert.ErrorIs(t, s.SetOption("colour", "red"), ErrUnknownOption)
	assert.Equal(t, before, s.Settings)
}

func TestCommandRun(t *testing.T) {
	s := newTestSession(t, nil)
	_, _, c := bindSample(t, s)

	assert.Equal(t, 1, run(t, s, "nav", "down"))
	assert.Equal(t, 2, run(t, s, "nav", "down"))
	assert.Equal(t, 2, run(t, s, "nav", "down"))
	assert.Equal(t, 0, run(t, s, "nav", "left"))
	assert.Equal(t, 0, run(t, s, "nav", "select", "0"))

	run(t, s, "nav", "select", "2")
	assert.Equal(t, 1, run(t, s, "post", "score", "+"))
	assert.Equal(t, 1, c.Score)

	details := run(t, s, "post", "info").(PostDetails)
	assert.Same(t, c, details.Post)
	assert.Equal(t, "child", details.Role)

	found := run(t, s, "post", "find", "c").([]*model.Post)
	assert.Equal(t, []*model.Post{c}, found)

	view := run(t, s, "view", "set", "sort_method", "worst").(model.ViewSettings)
	assert.Equal(t, "worst", view.SortMethod)

	tests := []struct {
		name string
		cmd  model.Command
	}{
		{"empty scope", model.Command{}},
		{"unknown scope", model.Command{Scope: "node", Operation: "add"}},
		{"missing operation", model.Command{Scope: "nav"}},
		{"unknown operation", model.Command{Scope: "nav", Operation: "jump"}},
		{"too many arguments", model.Command{Scope: "nav", Operation: "up", Args: []string{"1"}}},
		{"missing argument", model.Command{Scope: "view", Operation: "set", Args: []string{"sort_method"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CommandRun(tt.cmd)
			assert.ErrorIs(t, err, ErrInvalidCommand)
		})
	}

	_, err := s.CommandRun(model.Command{Scope: "nav", Operation: "select", Args: []string{"x"}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.CommandRun(model.Command{Scope: "post", Operation: "score", Args: []string{"+5"}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGraphCommandsNeedStore(t *testing.T) {
	s := newTestSession(t, nil)

	_, err := s.GraphSave("ideas")
	assert.ErrorIs(t, err, ErrNoStore)
	assert.ErrorIs(t, s.GraphOpen("ideas", false), ErrNoStore)
	_, err = s.GraphList()
	assert.ErrorIs(t, err, ErrNoStore)
	assert.ErrorIs(t, s.AuthorAdd("bob", ""), ErrNoStore)

	// authors can still be chosen freely
	require.NoError(t, s.AuthorSelect("bob", ""))
	assert.Equal(t, "bob", s.Author)
}

func TestGraphNewGuardsUnsavedChanges(t *testing.T) {
	s := newTestSession(t, nil)

	require.NoError(t, s.GraphNew("topic", false))
	assert.Equal(t, "topic", s.Graph.Root().Text)
	assert.True(t, s.Dirty)

	assert.ErrorIs(t, s.GraphNew("other", false), ErrUnsavedChanges)
	require.NoError(t, s.GraphNew("", true))
	assert.Equal(t, DefaultTitle, s.Graph.Root().Text)
}

func TestGraphSaveOpenAutosave(t *testing.T) {
	store := newTestStore(t)
	s := newTestSession(t, store)
	_, b, _ := bindSample(t, s)

	_, err := s.GraphSave("")
	assert.ErrorIs(t, err, ErrNoGraphName)

	info, err := s.GraphSave("ideas")
	require.NoError(t, err)
	assert.Equal(t, "ideas", s.Info.Name)
	assert.NotEmpty(t, s.Info.ID)
	assert.Equal(t, 3, info.PostCount)
	assert.False(t, s.Dirty)

	// edits on a stored graph are written through
	require.NoError(t, s.Select(1))
	require.NoError(t, s.DraftReply())
	post, err := s.DraftSubmit("stored reply")
	require.NoError(t, err)
	assert.False(t, s.Dirty)
	require.NoError(t, s.Select(1))
	require.NoError(t, s.AdjustSelected(-1))
	assert.False(t, s.Dirty)

	other := newTestSession(t, store)
	require.NoError(t, other.GraphOpen("ideas", false))
	assert.Equal(t, 4, other.Graph.Len())
	loaded, ok := other.Graph.Get(post.ID)
	require.True(t, ok)
	assert.Equal(t, "stored reply", loaded.Text)
	loadedB, ok := other.Graph.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, -1, loadedB.Score)

	list, err := other.GraphList()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 4, list[0].PostCount)

	require.NoError(t, s.GraphDelete("ideas"))
	assert.True(t, s.Dirty)
	assert.ErrorIs(t, other.GraphOpen("ideas", true), storage.ErrGraphNotFound)
}

// flakyStore fails the next failPostAdds calls of PostAdd.
type flakyStore struct {
	storage.Store
	failPostAdds int
}

var errDiskFull = errors.New("disk full")

func (f *flakyStore) PostAdd(graphID string, rec model.PostRecord) error {
	if f.failPostAdds > 0 {
		f.failPostAdds--
		return errDiskFull
	}
	return f.Store.PostAdd(graphID, rec)
}

func TestAutosaveStopsAfterFailedWrite(t *testing.T) {
	store := &flakyStore{Store: newTestStore(t)}
	s := newTestSession(t, store)
	_, b, _ := bindSample(t, s)
	_, err := s.GraphSave("ideas")
	require.NoError(t, err)

	store.failPostAdds = 1
	s.Draft = Draft{Parent: b}
	lost, err := s.DraftSubmit("lost reply")
	require.NoError(t, err)
	assert.True(t, s.Dirty)

	// a reply to the unsaved post must not reach the store on its own
	s.Draft = Draft{Parent: lost}
	_, err = s.DraftSubmit("reply to lost")
	require.NoError(t, err)
	assert.True(t, s.Dirty)
	require.NoError(t, s.Select(1))
	require.NoError(t, s.AdjustSelected(1))
	assert.True(t, s.Dirty)
	assert.ErrorIs(t, s.checkUnsaved(false), ErrUnsavedChanges)

	other := newTestSession(t, store)
	require.NoError(t, other.GraphOpen("ideas", false))
	assert.Equal(t, 3, other.Graph.Len())

	// a full save brings the stored copy up to date and resumes autosave
	_, err = s.GraphSave("")
	require.NoError(t, err)
	assert.False(t, s.Dirty)
	s.Draft = Draft{Parent: lost}
	_, err = s.DraftSubmit("stored again")
	require.NoError(t, err)
	assert.False(t, s.Dirty)

	require.NoError(t, other.GraphOpen("ideas", true))
	assert.Equal(t, 6, other.Graph.Len())
}

func TestGraphExportImport(t *testing.T) {
	s := newTestSession(t, nil)
	bindSample(t, s)
	path := filepath.Join(t.TempDir(), "sample.bug")

	require.NoError(t, s.GraphExport(path, ""))

	other := newTestSession(t, nil)
	require.NoError(t, other.GraphImport(path, "", false))
	assert.Equal(t, "sample", other.Info.Name)
	assert.Equal(t, pageTexts(s.Page), pageTexts(other.Page))
	assert.True(t, other.Dirty)
	assert.ErrorIs(t, other.GraphImport(path, "", false), ErrUnsavedChanges)
}

func TestAuthors(t *testing.T) {
	store := newTestStore(t)
	s := newTestSession(t, store)
	bindSample(t, s)

	require.NoError(t, s.AuthorAdd("bob", "secret"))
	assert.ErrorIs(t, s.AuthorSelect("bob", "wrong"), ErrAuthentication)
	assert.Equal(t, "ann", s.Author)

	require.NoError(t, s.AuthorSelect("bob", "secret"))
	assert.Equal(t, "bob", s.Author)
	require.NoError(t, s.AuthorSelect("cy", ""))
	assert.Equal(t, "cy", s.Author)

	authors, err := s.AuthorList()
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "ann", authors[0].Name)
	assert.False(t, authors[0].Protected)
	assert.Equal(t, "bob", authors[1].Name)
	assert.True(t, authors[1].Protected)
}
