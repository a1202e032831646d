package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/render"
)

// PageUI draws a rendered page with a gutter and a right-aligned info column.
type PageUI struct {
	visualizer *Visualizer
	width      int
}

// PageState is what PageUI needs besides the page itself.
type PageState struct {
	Selected    int
	Now         time.Time
	ReplyTo     *model.Post
	Destination *model.Post
}

func NewPageUI(w io.Writer, useColor bool, width int) *PageUI {
	if width <= 0 {
		width = DefaultWidth
	}
	return &PageUI{
		visualizer: NewVisualizer(w, useColor),
		width:      width,
	}
}

// Render prints every line of p.
func (pui *PageUI) Render(p *render.Page, st PageState) {
	for i := range p.Lines {
		pui.visualizer.Println(pui.Line(p, i, st))
	}
}

// Line formats line i: selection cursor, draft mark, line number, text and
// info. Text that would run into the info column is cut with an ellipsis.
func (pui *PageUI) Line(p *render.Page, i int, st PageState) string {
	v := pui.visualizer
	l := p.Lines[i]

	cursor := " "
	if i == st.Selected {
		cursor = ">"
	}
	if l.IsSpacer() {
		return v.colorize(strings.TrimRight(fmt.Sprintf("%s     %s", cursor, p.Indent(i)), " "), ColorDarkGray)
	}

	prefix := fmt.Sprintf("%s%s%3d ", cursor, draftMark(l.Node.Post, st), i)
	indent := p.Indent(i)
	content := p.Content(i)
	info := p.Info(i, st.Now)

	used := runewidth.StringWidth(prefix) + runewidth.StringWidth(indent)
	infoWidth := runewidth.StringWidth(info)
	room := pui.width - used - infoWidth - 2
	if room < 1 {
		room = 1
	}
	if runewidth.StringWidth(content) > room {
		content = runewidth.Truncate(content, room, "…")
	}
	pad := pui.width - used - runewidth.StringWidth(content) - infoWidth
	if pad < 2 {
		pad = 2
	}

	var b strings.Builder
	b.WriteString(v.colorize(prefix, ColorGray))
	b.WriteString(v.colorize(indent, ColorDarkGray))
	b.WriteString(v.colorize(content, contentColor(l, i == st.Selected)))
	if info != "" {
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(v.colorize(info, ColorGray))
	}
	return b.String()
}

func draftMark(p *model.Post, st PageState) string {
	switch {
	case p == st.ReplyTo && p == st.Destination:
		return "*"
	case p == st.ReplyTo:
		return "r"
	case p == st.Destination:
		return "l"
	}
	return " "
}

func contentColor(l render.Line, selected bool) Color {
	switch {
	case selected:
		return ColorBrightWhite
	case l.Node.Ellipsis:
		return ColorDarkGray
	case l.Above:
		return ColorGray
	case l.Node.Post.Auxiliary == model.Canon:
		return ColorLightGreen
	case l.Node.Post.Auxiliary == model.Suppress:
		return ColorLightRed
	}
	return ColorDefault
}
