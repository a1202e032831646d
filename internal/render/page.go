// Package render flattens a linearized view tree into indented lines and
// moves a cursor over them.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/linear"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
)

// Tab is the indentation unit of one depth level.
const Tab = ":     "

// Line is one entry of a page. A line without a node is a spacer.
type Line struct {
	Depth  int
	Node   *linear.ViewNode
	Above  bool
	Marker string
}

// IsSpacer reports whether the line is a bare separator.
func (l Line) IsSpacer() bool {
	return l.Node == nil
}

// Page is a flattened view tree.
type Page struct {
	Tree     *linear.Tree
	Lines    []Line
	RootLine int
}

// Flatten lays the tree out into lines and assigns every view node its
// line number. Repeated posts get a marker pointing at the expanded line
// when repeats are collapsed.
func Flatten(tree *linear.Tree) *Page {
	p := &Page{Tree: tree}
	p.RootLine = p.write(tree.Root, 0, false)

	if tree.Settings.CollapseRepeats {
		for _, occ := range tree.Repeats() {
			first := occ[0].LineNum
			for _, n := range occ[1:] {
				diff := first - n.LineNum
				dir := "^"
				if diff > 0 {
					dir = "v"
				}
				if diff < 0 {
					diff = -diff
				}
				p.Lines[n.LineNum].Marker = fmt.Sprintf("   %s%d", dir, diff)
			}
		}
	}
	return p
}

func (p *Page) write(n *linear.ViewNode, depth int, above bool) int {
	hadMore := false
	for i := len(n.Aboves) - 1; i >= 0; i-- {
		a := n.Aboves[i]
		if hadMore || (i != len(n.Aboves)-1 && len(a.Aboves) > 0) {
			p.Lines = append(p.Lines, Line{Depth: depth + 1})
		}
		p.write(a, depth+1, true)
		hadMore = len(a.Belows) > 0
	}

	pos := len(p.Lines)
	p.Lines = append(p.Lines, Line{Depth: depth, Node: n, Above: above})
	n.LineNum = pos

	hadMore = false
	for i, b := range n.Belows {
		if hadMore || (i != 0 && len(b.Aboves) > 0) {
			p.Lines = append(p.Lines, Line{Depth: depth + 1})
		}
		p.write(b, depth+1, above)
		hadMore = len(b.Belows) > 0
	}
	return pos
}

// Len returns the number of lines.
func (p *Page) Len() int {
	return len(p.Lines)
}

// Selectable reports whether i addresses a content line.
func (p *Page) Selectable(i int) bool {
	return i >= 0 && i < len(p.Lines) && !p.Lines[i].IsSpacer()
}

// Node returns the view node on line i, nil for spacers and out-of-range lines.
func (p *Page) Node(i int) *linear.ViewNode {
	if i < 0 || i >= len(p.Lines) {
		return nil
	}
	return p.Lines[i].Node
}

// Content returns the line body without indentation: role prefix, tag,
// formality badge, text and repeat marker.
func (p *Page) Content(i int) string {
	l := p.Lines[i]
	if l.IsSpacer() {
		return ""
	}
	n := l.Node

	var b strings.Builder
	switch n.Role {
	case linear.Parent:
		b.WriteString("/ ")
	case linear.Destination:
		b.WriteString("\\ ")
	}
	switch n.Post.Auxiliary {
	case model.Canon:
		b.WriteString("[+] ")
	case model.Suppress:
		b.WriteString("[-] ")
	}
	switch n.Post.Formality() {
	case model.Canon:
		b.WriteString("☆ ")
	case model.Suppress:
		b.WriteString("🛇 ")
	}
	b.WriteString(n.Text())
	b.WriteString(l.Marker)
	return b.String()
}

// Indent returns the indentation of line i.
func (p *Page) Indent(i int) string {
	return strings.Repeat(Tab, p.Lines[i].Depth)
}

// Text returns the full rendered line i.
func (p *Page) Text(i int) string {
	return p.Indent(i) + p.Content(i)
}

// String renders the whole page, one line per entry.
func (p *Page) String() string {
	var b strings.Builder
	for i := range p.Lines {
		b.WriteString(p.Text(i))
		b.WriteByte('\n')
	}
	return b.String()
}

// Info returns the side column for line i: author, a timestamp relative to
// now and the score of child lines.
func (p *Page) Info(i int, now time.Time) string {
	l := p.Lines[i]
	if l.IsSpacer() {
		return ""
	}
	post := l.Node.Post

	info := post.Author
	if !post.Timestamp.IsZero() {
		if info != "" {
			info += ", "
		}
		info += Timestamp(post.Timestamp, now)
	}
	if l.Node.Role == linear.Child && post.Score != 0 {
		if info != "" {
			info += " | "
		}
		info += fmt.Sprintf("%d", post.Score)
	}
	return info
}

// Timestamp formats ts as hh:mm on the same day as now, MM/dd in the same
// year and MM/yyyy otherwise.
func Timestamp(ts, now time.Time) string {
	ts = ts.In(now.Location())
	switch {
	case ts.Year() != now.Year():
		return ts.Format("01/2006")
	case ts.YearDay() != now.YearDay():
		return ts.Format("01/02")
	default:
		return ts.Format("15:04")
	}
}
