package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

type counters struct {
	canon, suppress int
	formality       model.Auxiliary
}

func countersOf(p *model.Post) counters {
	return counters{canon: p.CanonScore, suppress: p.SuppressScore, formality: p.Formality()}
}

func TestTaggedPostSeedsSelfBias(t *testing.T) {
	g := New("root", "")
	c := mustAdd(t, g, g.Root(), nil, "canon", model.Canon)
	s := mustAdd(t, g, g.Root(), nil, "suppress", model.Suppress)
	n := mustAdd(t, g, g.Root(), nil, "neutral", model.Neutral)

	assert.Equal(t, counters{0, -1, model.Canon}, countersOf(c))
	assert.Equal(t, counters{0, -1, model.Canon}, countersOf(s))
	assert.Equal(t, counters{0, 0, model.Neutral}, countersOf(n))

	// the untagged root only accumulates, it never forwards
	assert.Equal(t, counters{1, 1, model.Neutral}, countersOf(g.Root()))
}

func TestNeutralParentStopsPropagation(t *testing.T) {
	g := New("root", "")
	grand := mustAdd(t, g, g.Root(), nil, "grandparent", model.Canon)
	assert.Equal(t, counters{0, -1, model.Canon}, countersOf(grand))
	assert.Equal(t, 1, g.Root().CanonScore)

	parent := mustAdd(t, g, grand, nil, "parent", model.Neutral)
	assert.Equal(t, counters{0, -1, model.Canon}, countersOf(grand))

	mustAdd(t, g, parent, nil, "leaf", model.Canon)
	assert.Equal(t, counters{1, 0, model.Canon}, countersOf(parent))
	assert.Equal(t, counters{0, -1, model.Canon}, countersOf(grand), "neutral parent must not forward")
	assert.Equal(t, 1, g.Root().CanonScore)
}

func TestCanonTransitionsRippleUp(t *testing.T) {
	g := New("root", "")
	grand := mustAdd(t, g, g.Root(), nil, "grandparent", model.Canon)
	parent := mustAdd(t, g, grand, nil, "parent", model.Canon)

	// parent's initial upgrade counts on the grandparent; grandparent stays Canon
	assert.Equal(t, counters{0, -1, model.Canon}, countersOf(parent))
	assert.Equal(t, counters{1, -1, model.Canon}, countersOf(grand))
	assert.Equal(t, 1, g.Root().CanonScore)

	// a suppressing reply drops parent out of Canon, which withdraws its vote
	mustAdd(t, g, parent, nil, "objection", model.Suppress)
	assert.Equal(t, counters{0, 0, model.Neutral}, countersOf(parent))
	assert.Equal(t, counters{0, -1, model.Canon}, countersOf(grand))

	// a canon reply brings parent back into Canon, which restores the vote
	mustAdd(t, g, parent, nil, "support", model.Canon)
	assert.Equal(t, counters{1, 0, model.Canon}, countersOf(parent))
	assert.Equal(t, counters{1, -1, model.Canon}, countersOf(grand))

	// root is untagged, so nothing below the first tagged level ever reaches it again
	assert.Equal(t, 1, g.Root().CanonScore)
}

func TestCanonToCanonDoesNotRipple(t *testing.T) {
	g := New("root", "")
	grand := mustAdd(t, g, g.Root(), nil, "grandparent", model.Canon)
	parent := mustAdd(t, g, grand, nil, "parent", model.Canon)

	mustAdd(t, g, parent, nil, "leaf", model.Canon)
	assert.Equal(t, counters{1, -1, model.Canon}, countersOf(parent))
	assert.Equal(t, counters{1, -1, model.Canon}, countersOf(grand))
}

func TestSuppressTransitionsDoNotRipple(t *testing.T) {
	g := New("root", "")
	grand := mustAdd(t, g, g.Root(), nil, "grandparent", model.Canon)
	parent := mustAdd(t, g, grand, nil, "parent", model.Canon)

	mustAdd(t, g, parent, nil, "first objection", model.Suppress)
	before := countersOf(grand)

	// Neutral -> Suppress is not a Canon transition
	mustAdd(t, g, parent, nil, "second objection", model.Suppress)
	assert.Equal(t, counters{0, 1, model.Suppress}, countersOf(parent))
	assert.Equal(t, before, countersOf(grand))
	assert.Equal(t, -1, grand.SuppressScore, "suppress counts never travel upward")
}

func TestPropagationOnDeepChain(t *testing.T) {
	g := New("root", "")
	chain := []*model.Post{g.Root()}
	for i := 0; i < 200; i++ {
		chain = append(chain, mustAdd(t, g, chain[len(chain)-1], nil, "link", model.Canon))
	}

	tip := chain[len(chain)-1]
	mustAdd(t, g, tip, nil, "objection", model.Suppress)
	assert.Equal(t, model.Neutral, tip.Formality())
	assert.Equal(t, 0, chain[len(chain)-2].CanonScore)
	assert.Equal(t, model.Canon, chain[len(chain)-2].Formality())
}
