package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/Pqvqn/GraphBrainstormExperiments/internal/model"
	"github.com/Pqvqn/GraphBrainstormExperiments/internal/session"
)

const timeLayout = "2006-01-02 15:04"

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	return table
}

// display prints the result of cmd. Page-changing commands print nothing
// here; the page itself is redrawn afterwards.
func (c *CLI) display(cmd model.Command, result interface{}) {
	switch r := result.(type) {
	case string:
		if cmd.Scope == "author" {
			c.ui.Success(fmt.Sprintf("Posting as %s", r))
		} else {
			c.ui.Info(r)
		}
	case session.Draft:
		c.showDraft(r)
	case *model.Post:
		c.ui.Success(fmt.Sprintf("Posted %s", r.ID))
	case session.PostDetails:
		c.showPostDetails(r)
	case []*model.Post:
		c.showPosts(r)
	case session.HistoryView:
		c.showHistory(r)
	case model.ViewSettings:
		if cmd.Operation == "show" {
			c.showView(r)
		}
	case model.GraphInfo:
		c.ui.Success(fmt.Sprintf("Graph '%s' saved (%d posts)", r.Name, r.PostCount))
	case []model.GraphInfo:
		c.showGraphs(r)
	case []model.AuthorInfo:
		c.showAuthors(r)
	case nil:
		switch {
		case cmd.Scope == "graph" && cmd.Operation == "export":
			c.ui.Success(fmt.Sprintf("Graph exported to %s", cmd.Args[0]))
		case cmd.Scope == "graph" && cmd.Operation == "delete":
			c.ui.Success(fmt.Sprintf("Graph '%s' deleted", cmd.Args[0]))
		case cmd.Scope == "author" && cmd.Operation == "add":
			c.ui.Success(fmt.Sprintf("Author '%s' added", cmd.Args[0]))
		}
	}
}

func (c *CLI) showDraft(d session.Draft) {
	line := "{{gray}}draft:{{default}}"
	if d.Parent != nil {
		line += fmt.Sprintf(" reply to {{yellow}}%s{{default}}", d.Parent.ID)
	}
	if d.Destination != nil {
		line += fmt.Sprintf(" link to {{orange}}%s{{default}}", d.Destination.ID)
	}
	if d.Parent == nil && d.Destination == nil {
		line += " empty"
	}
	c.ui.PrintTagged(line)
}

func (c *CLI) showPostDetails(d session.PostDetails) {
	p := d.Post
	table := newTable(c.out, "FIELD", "VALUE")
	table.Append([]string{"id", p.ID})
	table.Append([]string{"text", p.Text})
	table.Append([]string{"author", p.Author})
	table.Append([]string{"created", formatTime(p.Timestamp)})
	table.Append([]string{"score", strconv.Itoa(p.Score)})
	table.Append([]string{"visibility", strconv.FormatFloat(p.Visibility, 'f', 3, 64)})
	table.Append([]string{"tag", p.Auxiliary.String()})
	table.Append([]string{"formality", d.Formality.String()})
	table.Append([]string{"parent", postID(p.Parent)})
	table.Append([]string{"destination", postID(p.Destination)})
	table.Append([]string{"replies", strconv.Itoa(len(p.Children))})
	table.Append([]string{"annotations", strconv.Itoa(len(p.Sources))})
	table.Append([]string{"role", d.Role})
	table.Append([]string{"line", strconv.Itoa(d.Line)})
	table.Render()
}

func (c *CLI) showPosts(posts []*model.Post) {
	if len(posts) == 0 {
		c.ui.Info("No posts found")
		return
	}
	table := newTable(c.out, "ID", "PARENT", "DEST", "AUTHOR", "SCORE", "TAG", "TEXT")
	for _, p := range posts {
		table.Append([]string{
			p.ID,
			postID(p.Parent),
			postID(p.Destination),
			p.Author,
			strconv.Itoa(p.Score),
			p.Auxiliary.String(),
			p.ShortText(),
		})
	}
	table.Render()
}

func (c *CLI) showHistory(h session.HistoryView) {
	table := newTable(c.out, "", "#", "ID", "TEXT")
	for i, p := range h.Entries {
		current := ""
		if i == h.Index {
			current = ">"
		}
		table.Append([]string{current, strconv.Itoa(i), p.ID, p.ShortText()})
	}
	table.Render()
}

func (c *CLI) showView(v model.ViewSettings) {
	table := newTable(c.out, "OPTION", "VALUE")
	table.Append([]string{"show_ellipses", strconv.FormatBool(v.ShowEllipses)})
	table.Append([]string{"collapse_repeats", strconv.FormatBool(v.CollapseRepeats)})
	table.Append([]string{"separate_formality", strconv.FormatBool(v.SeparateFormality)})
	table.Append([]string{"direction_bias", strconv.FormatFloat(v.DirectionBias, 'g', -1, 64)})
	table.Append([]string{"depth_threshold", strconv.FormatFloat(v.DepthThreshold, 'g', -1, 64)})
	table.Append([]string{"sort_method", v.SortMethod})
	table.Render()
}

func (c *CLI) showGraphs(graphs []model.GraphInfo) {
	if len(graphs) == 0 {
		c.ui.Info("No graphs stored")
		return
	}
	table := newTable(c.out, "NAME", "POSTS", "CREATED", "UPDATED")
	for _, g := range graphs {
		table.Append([]string{g.Name, strconv.Itoa(g.PostCount), formatTime(g.Created), formatTime(g.Updated)})
	}
	table.Render()
}

func (c *CLI) showAuthors(authors []model.AuthorInfo) {
	if len(authors) == 0 {
		c.ui.Info("No authors")
		return
	}
	table := newTable(c.out, "NAME", "PROTECTED", "REGISTERED")
	for _, a := range authors {
		protected := "no"
		if a.Protected {
			protected = "yes"
		}
		table.Append([]string{a.Name, protected, formatTime(a.Created)})
	}
	table.Render()
}

func postID(p *model.Post) string {
	if p == nil {
		return "-"
	}
	return p.ID
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}
