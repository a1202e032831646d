package linear

import (
	"math/rand"
	"sort"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

// Tree is the result of one linearization pass.
type Tree struct {
	Root     *ViewNode
	Settings Settings

	seen  map[*model.Post][]*ViewNode
	order []*model.Post
}

// Occurrences returns every registered view node of p, the expanded one first.
func (t *Tree) Occurrences(p *model.Post) []*ViewNode {
	return t.seen[p]
}

// Repeats returns, in discovery order, the occurrence lists of posts that
// were reached more than once.
func (t *Tree) Repeats() [][]*ViewNode {
	var out [][]*ViewNode
	for _, p := range t.order {
		if nodes := t.seen[p]; len(nodes) > 1 {
			out = append(out, nodes)
		}
	}
	return out
}

// Follow walks trace from the root and returns the deepest node reached.
// When the full path no longer exists the nearest surviving ancestor is
// returned instead, so the result is never nil.
func (t *Tree) Follow(trace []Step) *ViewNode {
	cur := t.Root
	for _, step := range trace {
		next := cur.Lookup(step.Role, step.Post)
		if next == nil {
			break
		}
		cur = next
	}
	return cur
}

// frontier keeps pending nodes in ascending visibility. Nodes of equal
// weight are inserted ahead of each other, so among equals the earliest
// pushed is popped first.
type frontier []*ViewNode

func (f *frontier) push(n *ViewNode) {
	i := sort.Search(len(*f), func(i int) bool { return (*f)[i].Visibility >= n.Visibility })
	*f = append(*f, nil)
	copy((*f)[i+1:], (*f)[i:])
	(*f)[i] = n
}

func (f *frontier) pop() *ViewNode {
	old := *f
	n := old[len(old)-1]
	*f = old[:len(old)-1]
	return n
}

// Linearize explores the graph around root, always expanding the strongest
// pending node next, and returns the populated view tree.
//
// A post reached a second time is recorded as a leaf and never expanded
// again, which bounds the walk on cyclic annotation graphs.
func Linearize(root *model.Post, s Settings) (*Tree, error) {
	if root == nil {
		return nil, ErrNoRoot
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	t := &Tree{
		Root:     newNode(root, nil, Root, 1),
		Settings: s,
		seen:     make(map[*model.Post][]*ViewNode),
	}
	t.register(t.Root)

	x := expander{
		Settings: s,
		forward:  s.ForwardWeight(),
		backward: s.BackwardWeight(),
		limit:    s.Threshold(),
	}
	if s.SortMethod == SortRandom {
		x.rnd = s.random()
	}

	queue := frontier{t.Root}
	for len(queue) > 0 {
		cur := queue.pop()
		for _, n := range x.expand(cur) {
			if len(t.seen[n.Post]) > 0 {
				if s.CollapseRepeats {
					n.Override = n.Post.ShortText()
				}
				t.register(n)
				continue
			}
			t.register(n)
			queue.push(n)
		}
	}
	return t, nil
}

func (t *Tree) register(n *ViewNode) {
	if _, ok := t.seen[n.Post]; !ok {
		t.order = append(t.order, n.Post)
	}
	t.seen[n.Post] = append(t.seen[n.Post], n)
}

type expander struct {
	Settings
	forward, backward, limit float64
	rnd                      *rand.Rand
}

func (x *expander) sorted(posts []*model.Post) []*model.Post {
	return x.SortMethod.order(posts, x.rnd)
}

// expand attaches the next ring of nodes around v and returns the ones that
// may be expanded further. Ellipsis placeholders are attached but not
// returned. At most one placeholder is added per direction.
func (x *expander) expand(v *ViewNode) []*ViewNode {
	var fresh []*ViewNode
	var aboveEllipsis, belowEllipsis bool
	p := v.Post

	if v.Role != Child && p.Parent != nil {
		vis := v.Visibility * x.backward
		if vis >= x.limit {
			n := newNode(p.Parent, v, Parent, vis)
			v.Aboves = append(v.Aboves, n)
			fresh = append(fresh, n)
		} else if x.ShowEllipses {
			aboveEllipsis = true
			v.Aboves = append(v.Aboves, newEllipsis(p.Parent, v, Parent, vis))
		}
	}

	if v.Role != Source && p.Destination != nil {
		vis := v.Visibility * x.forward
		if vis >= x.limit {
			n := newNode(p.Destination, v, Destination, vis)
			v.Belows = append(v.Belows, n)
			fresh = append(fresh, n)
		} else if x.ShowEllipses {
			belowEllipsis = true
			v.Belows = append(v.Belows, newEllipsis(p.Destination, v, Destination, vis))
		}
	}

	children := x.sorted(p.Children)
	if x.SeparateFormality {
		sort.SliceStable(children, func(i, j int) bool {
			return children[i].Formality() > children[j].Formality()
		})
	}
	patience := 1.0
	for _, c := range children {
		if v.Role == Parent && c == v.Heading.Post {
			continue
		}
		vis := v.Visibility * x.forward * c.Visibility
		if vis*patience < x.limit {
			if x.ShowEllipses && !belowEllipsis {
				v.Belows = append(v.Belows, newEllipsis(c, v, Child, vis))
			}
			break
		}
		n := newNode(c, v, Child, vis)
		v.Belows = append(v.Belows, n)
		fresh = append(fresh, n)
		patience *= v.Visibility
	}

	patience = 1.0
	for _, src := range x.sorted(p.Sources) {
		if v.Role == Destination && src == v.Heading.Post {
			continue
		}
		vis := v.Visibility * x.backward * x.backward
		if vis*patience < x.limit {
			if x.ShowEllipses && !aboveEllipsis {
				v.Aboves = append(v.Aboves, newEllipsis(src, v, Source, vis))
			}
			break
		}
		n := newNode(src, v, Source, vis)
		v.Aboves = append(v.Aboves, n)
		fresh = append(fresh, n)
		patience *= v.Visibility
	}

	return fresh
}
