package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/graph"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/linear"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

type fixture struct {
	g        *graph.Graph
	x, b, y  *model.Post
	settings linear.Settings
}

// newFixture builds A with children X and Y, where B is a child of X and
// also the destination of Y.
func newFixture(t *testing.T) fixture {
	t.Helper()
	g := graph.New("A", "")
	x, err := g.AddPost(g.Root(), nil, "X", model.Neutral, "")
	require.NoError(t, err)
	b, err := g.AddPost(x, nil, "B", model.Neutral, "")
	require.NoError(t, err)
	y, err := g.AddPost(g.Root(), b, "Y", model.Neutral, "")
	require.NoError(t, err)

	s := linear.DefaultSettings()
	s.ShowEllipses = false
	return fixture{g: g, x: x, b: b, y: y, settings: s}
}

func (f fixture) page(t *testing.T, root *model.Post) *Page {
	t.Helper()
	tree, err := linear.Linearize(root, f.settings)
	require.NoError(t, err)
	return Flatten(tree)
}

func texts(p *Page) []string {
	out := make([]string, p.Len())
	for i := range p.Lines {
		out[i] = p.Text(i)
	}
	return out
}

func TestFlattenFromRoot(t *testing.T) {
	f := newFixture(t)
	p := f.page(t, f.g.Root())

	assert.Equal(t, []string{
		"A",
		":     X",
		":     :     B",
		":     ",
		":     Y",
		":     :     \\ B   ^3",
	}, texts(p))
	assert.Equal(t, 0, p.RootLine)
	assert.True(t, p.Lines[3].IsSpacer())
	assert.Equal(t, 1, p.Lines[3].Depth)

	occ := p.Tree.Occurrences(f.b)
	require.Len(t, occ, 2)
	assert.Equal(t, 2, occ[0].LineNum)
	assert.Equal(t, 5, occ[1].LineNum)

	for i, l := range p.Lines {
		assert.False(t, l.Above, i)
	}
}

func TestFlattenAboves(t *testing.T) {
	f := newFixture(t)
	p := f.page(t, f.b)

	assert.Equal(t, []string{
		":     :     / A   v3",
		":     Y",
		":     ",
		":     :     / A",
		":     :     :     Y   ^3",
		":     / X",
		"B",
	}, texts(p))
	assert.Equal(t, 6, p.RootLine)

	for i := 0; i < 6; i++ {
		if !p.Lines[i].IsSpacer() {
			assert.True(t, p.Lines[i].Above, i)
		}
	}
	assert.False(t, p.Lines[6].Above)
	assert.Equal(t, linear.Source, p.Node(1).Role)
	assert.Equal(t, linear.Child, p.Node(4).Role)
}

func TestNoMarkersWithoutCollapse(t *testing.T) {
	f := newFixture(t)
	f.settings.CollapseRepeats = false
	p := f.page(t, f.g.Root())

	assert.Equal(t, ":     :     \\ B", p.Text(5))
	for _, l := range p.Lines {
		assert.Empty(t, l.Marker)
	}
}

func TestContentDecorations(t *testing.T) {
	g := graph.New("root", "")
	grand, err := g.AddPost(g.Root(), nil, "claim", model.Canon, "")
	require.NoError(t, err)
	_, err = g.AddPost(grand, nil, "plain", model.Neutral, "")
	require.NoError(t, err)

	tree, err := linear.Linearize(grand, linear.DefaultSettings())
	require.NoError(t, err)
	p := Flatten(tree)

	assert.Equal(t, ":     / ☆ root", p.Text(0))
	assert.Equal(t, "[+] ☆ claim", p.Content(p.RootLine))
	assert.Equal(t, ":     plain", p.Text(p.RootLine+1))
}

func TestSelectableAndNode(t *testing.T) {
	f := newFixture(t)
	p := f.page(t, f.g.Root())

	assert.True(t, p.Selectable(0))
	assert.False(t, p.Selectable(3))
	assert.False(t, p.Selectable(-1))
	assert.False(t, p.Selectable(p.Len()))
	assert.Nil(t, p.Node(3))
	assert.Nil(t, p.Node(99))
	assert.Same(t, f.x, p.Node(1).Post)
	assert.Equal(t, "", p.Info(3, time.Now()))
}

func TestTimestamp(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"same day", time.Date(2024, 6, 15, 9, 5, 0, 0, time.UTC), "09:05"},
		{"same year", time.Date(2024, 3, 2, 23, 59, 0, 0, time.UTC), "03/02"},
		{"older", time.Date(2023, 11, 20, 8, 0, 0, 0, time.UTC), "11/2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Timestamp(tt.ts, now))
		})
	}
}

func TestInfo(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)
	g := graph.New("root", "")
	g.Root().Timestamp = time.Time{}
	g.SetClock(func() time.Time { return time.Date(2024, 6, 15, 9, 5, 0, 0, time.UTC) })

	scored, err := g.AddPost(g.Root(), nil, "scored", model.Neutral, "ann")
	require.NoError(t, err)
	require.NoError(t, g.AdjustScore(scored, 2))
	_, err = g.AddPost(g.Root(), nil, "anon", model.Neutral, "")
	require.NoError(t, err)
	require.NoError(t, g.AdjustScore(g.Root(), -1))

	s := linear.DefaultSettings()
	tree, err := linear.Linearize(g.Root(), s)
	require.NoError(t, err)
	p := Flatten(tree)

	require.Equal(t, 3, p.Len())
	assert.Equal(t, "", p.Info(0, now), "root score is never shown")
	assert.Equal(t, "ann, 09:05 | 2", p.Info(1, now))
	assert.Equal(t, "09:05", p.Info(2, now))
}

func TestInfoWithoutAuthorOrTime(t *testing.T) {
	g := graph.Empty()
	g.Insert(model.PostRecord{ID: "X0", Text: "root"})
	g.Insert(model.PostRecord{ID: "X1", Parent: "X0", Text: "imported", Score: 2})

	tree, err := linear.Linearize(g.Root(), linear.DefaultSettings())
	require.NoError(t, err)
	p := Flatten(tree)

	require.Equal(t, 2, p.Len())
	assert.Equal(t, "", p.Info(0, time.Now()))
	assert.Equal(t, "2", p.Info(1, time.Now()))
}
