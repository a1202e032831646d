package linear

import "github.com/Pqvqn/GraphBrainstormExperiments/internal/model"

// Role is the relation of a view node to the node that generated it.
type Role int

const (
	Destination Role = -2
	Child       Role = -1
	Root        Role = 0
	Parent      Role = 1
	Source      Role = 2
)

func (r Role) String() string {
	switch r {
	case Destination:
		return "destination"
	case Child:
		return "child"
	case Root:
		return "root"
	case Parent:
		return "parent"
	case Source:
		return "source"
	default:
		return "unknown"
	}
}

// Above reports whether nodes of this role are laid out above their heading.
func (r Role) Above() bool {
	return r == Parent || r == Source
}

// Ellipsis is the override text of a placeholder for a truncated branch.
const Ellipsis = "..."

// ViewNode wraps one post as seen from the node that generated it. View
// nodes live for a single render pass.
type ViewNode struct {
	Post       *model.Post
	Heading    *ViewNode
	Role       Role
	Visibility float64
	Override   string
	Ellipsis   bool
	Aboves     []*ViewNode
	Belows     []*ViewNode
	LineNum    int
}

func newNode(p *model.Post, heading *ViewNode, role Role, vis float64) *ViewNode {
	return &ViewNode{Post: p, Heading: heading, Role: role, Visibility: vis, LineNum: -1}
}

func newEllipsis(p *model.Post, heading *ViewNode, role Role, vis float64) *ViewNode {
	n := newNode(p, heading, role, vis)
	n.Override = Ellipsis
	n.Ellipsis = true
	return n
}

// Text returns the override when set, otherwise the post text.
func (n *ViewNode) Text() string {
	if n.Override != "" {
		return n.Override
	}
	return n.Post.Text
}

// Lookup finds the node generated from n with the given role and post.
// Parents and destinations can only be the first entry of their list.
func (n *ViewNode) Lookup(role Role, p *model.Post) *ViewNode {
	switch role {
	case Parent:
		if len(n.Aboves) > 0 && n.Aboves[0].Post == p {
			return n.Aboves[0]
		}
	case Destination:
		if len(n.Belows) > 0 && n.Belows[0].Post == p {
			return n.Belows[0]
		}
	case Child:
		for _, b := range n.Belows {
			if b.Post == p {
				return b
			}
		}
	case Source:
		for _, a := range n.Aboves {
			if a.Post == p {
				return a
			}
		}
	}
	return nil
}

// Step is one hop of a path through a view tree.
type Step struct {
	Post *model.Post
	Role Role
}

// Trace returns the path from the tree root down to n, root excluded.
func (n *ViewNode) Trace() []Step {
	var trace []Step
	for cur := n; cur != nil && cur.Heading != nil; cur = cur.Heading {
		trace = append(trace, Step{Post: cur.Post, Role: cur.Role})
	}
	for i, j := 0, len(trace)-1; i < j; i, j = i+1, j-1 {
		trace[i], trace[j] = trace[j], trace[i]
	}
	return trace
}
